package gitlab

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// Config holds the settings needed to create a GitLab
// pages build provider.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// Repo is the full project path
	// (e.g. "org/project").
	Repo string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
}

// Provider triggers pages pipelines on GitLab.
//
// Pattern: Strategy -- implements site.PageHost.
type Provider struct {
	client *gl.Client
	repo   string
}

// NewProvider validates cfg and returns a Provider ready
// to trigger pipelines.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating gitlab provider"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	host := cfg.Host
	if host == "" {
		host = "https://gitlab.com"
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return &Provider{
		client: client,
		repo:   cfg.Repo,
	}, nil
}

// RequestBuild triggers a pipeline on the given branch.
// The pages job in the project's CI configuration is what
// actually deploys the site.
func (p *Provider) RequestBuild(
	_ context.Context,
	branch string,
) (string, error) {
	const errCtx = "triggering gitlab pages pipeline"

	opts := gl.CreatePipelineOptions{
		Ref: &branch,
	}

	created, resp, err := p.client.Pipelines.CreatePipeline(
		p.repo, &opts,
	)
	if err == nil {
		slog.Info(
			"triggered pages pipeline",
			"url", created.WebURL,
		)

		return created.WebURL, nil
	}

	// Log the response body for debugging.
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close() //nolint:errcheck

		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			slog.Warn(
				"cannot read response body",
				"error", readErr,
			)
		} else {
			slog.Warn(
				"gitlab response",
				"body", string(rb),
			)
		}
	}

	return "", fmt.Errorf("%s: %w", errCtx, err)
}
