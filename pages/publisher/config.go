package publisher

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// FileConfig mirrors the CLI flags in a YAML config file.
// Values from the file seed the flag defaults; flags set
// on the command line win.
type FileConfig struct {
	SourceDir            string `yaml:"source_dir"`
	OutputDir            string `yaml:"output_dir"`
	Branch               string `yaml:"branch"`
	RemoteURL            string `yaml:"remote_url"`
	GitServer            string `yaml:"git_server"`
	RepoOwner            string `yaml:"repo_owner"`
	Repo                 string `yaml:"repo"`
	GithubEnterpriseHost string `yaml:"github_enterprise_host"`
	GitlabHost           string `yaml:"gitlab_host"`
	TokenEnv             string `yaml:"token_env"`
	CommitName           string `yaml:"commit_name"`
	CommitEmail          string `yaml:"commit_email"`
	MessageTemplate      string `yaml:"message_template"`
	SkipUnchanged        bool   `yaml:"skip_unchanged"`
	RequestBuild         bool   `yaml:"request_build"`
	SummaryPath          string `yaml:"summary_path"`
}

// LoadFileConfig reads and parses a YAML config file.
// Unknown keys are rejected so typos fail loudly.
func LoadFileConfig(path string) (*FileConfig, error) {
	const errCtx = "loading config file"

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var fc FileConfig

	if err := yaml.UnmarshalWithOptions(
		data, &fc, yaml.Strict(),
	); err != nil {
		return nil, fmt.Errorf(
			"%s: parse yaml: %w", errCtx, err,
		)
	}

	return &fc, nil
}
