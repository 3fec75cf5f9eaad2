package publisher

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Report summarizes a publish run. It is returned by Run
// and optionally written as JSON next to the build
// artifacts for CI consumption.
type Report struct {
	// Revision is the short source revision hash.
	Revision string `json:"revision"`

	// Branch is the pages branch that was targeted.
	Branch string `json:"branch"`

	// Commit is the full hash of the publish commit.
	// Empty when the run was skipped.
	Commit string `json:"commit,omitempty"`

	// Digest is the content digest of the published
	// tree.
	Digest string `json:"digest"`

	// Files is the number of files in the output
	// directory.
	Files int `json:"files"`

	// Skipped is true when the run stopped because the
	// tree matched the published tip.
	Skipped bool `json:"skipped"`

	// Pushed is true when the commit reached the
	// remote.
	Pushed bool `json:"pushed"`

	// BuildURL describes the hosting-platform build
	// triggered after the push, when one was requested.
	BuildURL string `json:"build_url,omitempty"`

	// DurationMS is the wall-clock duration of the run
	// in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// WriteFile writes the report as indented JSON to path.
func (r *Report) WriteFile(path string) error {
	const errCtx = "writing report"

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	data = append(data, '\n')

	//nolint:gosec // report is not sensitive
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
