package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/pages_publisher/pages/exec"
)

func TestEx_success(t *testing.T) {
	t.Parallel()

	out, err := exec.Ex("", "echo", "hello")

	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestEx_with_dir(t *testing.T) {
	t.Parallel()

	out, err := exec.Ex("/tmp", "pwd")

	require.NoError(t, err)
	assert.Contains(t, out, "/tmp")
}

func TestEx_failure(t *testing.T) {
	t.Parallel()

	_, err := exec.Ex("", "false")

	assert.Error(t, err)
}

func TestEx_failure_redacts_args(t *testing.T) {
	exec.RegisterSecret("s3cr3t-token")
	t.Cleanup(exec.ResetSecrets)

	_, err := exec.Ex(
		"", "false", "https://s3cr3t-token@example.com",
	)

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cr3t-token")
	assert.Contains(t, err.Error(), "***")
}

func TestEx_output_not_redacted(t *testing.T) {
	exec.RegisterSecret("opaque")
	t.Cleanup(exec.ResetSecrets)

	// Callers get the raw output; only logs and errors
	// are masked.
	out, err := exec.Ex("", "echo", "opaque")

	require.NoError(t, err)
	assert.Contains(t, out, "opaque")
}

func TestRedact(t *testing.T) {
	exec.RegisterSecret("tok-one")
	exec.RegisterSecret("tok-two")
	t.Cleanup(exec.ResetSecrets)

	got := exec.Redact("a=tok-one b=tok-two c=tok-one")

	assert.Equal(t, "a=*** b=*** c=***", got)
}

func TestRegisterSecret_ignores_empty(t *testing.T) {
	exec.RegisterSecret("")
	t.Cleanup(exec.ResetSecrets)

	assert.Equal(t, "unchanged", exec.Redact("unchanged"))
}

func TestMustEx_panics_on_failure(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		exec.MustEx("", "false")
	})
}

func TestMustEx_success(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		exec.MustEx("", "echo", "ok")
	})
}
