// Package exec provides shell command execution helpers
// with secret redaction.
package exec

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

const mask = "***"

//nolint:gochecknoglobals // process-wide secret registry
var (
	secretsMu sync.RWMutex
	secrets   []string
)

// RegisterSecret adds a value to the redaction registry.
// Registered values are masked in logged command lines,
// logged output, and wrapped error strings. Empty values
// are ignored.
func RegisterSecret(value string) {
	if value == "" {
		return
	}

	secretsMu.Lock()
	defer secretsMu.Unlock()

	secrets = append(secrets, value)
}

// ResetSecrets clears the redaction registry.
func ResetSecrets() {
	secretsMu.Lock()
	defer secretsMu.Unlock()

	secrets = nil
}

// Redact masks every registered secret in s.
func Redact(s string) string {
	secretsMu.RLock()
	defer secretsMu.RUnlock()

	for _, sec := range secrets {
		s = strings.ReplaceAll(s, sec, mask)
	}

	return s
}

// Ex executes the named command in the given directory and
// returns combined stdout+stderr output. Pass empty dir to
// use the current working directory. The returned output
// is raw; everything logged or embedded in the error is
// redacted.
func Ex(
	dir string,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "executing command"

	args := strings.Join(arg, " ")

	slog.Info(
		"executing",
		"cmd", name,
		"args", Redact(args),
	)

	cmd := exec.CommandContext(context.Background(), name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	by, err := cmd.CombinedOutput()

	slog.Info("output", "result", Redact(string(by)))

	if err != nil {
		return string(by), fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, Redact(args), err,
		)
	}

	return string(by), nil
}

// MustEx executes the command and panics on failure.
func MustEx(dir string, name string, arg ...string) {
	if _, err := Ex(dir, name, arg...); err != nil {
		panic(fmt.Sprintf("command failed: %v", err))
	}
}
