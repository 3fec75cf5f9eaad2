package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// Config holds the settings needed to create a GitHub
// pages build provider.
type Config struct {
	// RepoOwner is the GitHub user or organisation
	// that owns the repository.
	RepoOwner string
	// Repo is the repository name (without owner).
	Repo string
	// AccessToken is a personal access token or
	// GitHub App token used for authentication.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
}

// Provider requests GitHub Pages builds.
//
// Pattern: Strategy -- implements site.PageHost.
type Provider struct {
	client    *gh.Client
	repoOwner string
	repo      string
}

// NewProvider validates cfg and returns a Provider ready
// to request pages builds.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github provider"

	if cfg.RepoOwner == "" {
		return nil, fmt.Errorf(
			"%s: repo owner must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	client := gh.NewClient(nil).
		WithAuthToken(cfg.AccessToken)

	if cfg.EnterpriseHost != "" {
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Provider{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
	}, nil
}

// RequestBuild asks GitHub to rebuild the Pages site. The
// branch argument is ignored: GitHub builds from the
// branch configured in the repository's Pages settings.
func (p *Provider) RequestBuild(
	ctx context.Context,
	_ string,
) (string, error) {
	const errCtx = "requesting github pages build"

	build, resp, err := p.client.Repositories.RequestPageBuild(
		ctx, p.repoOwner, p.repo,
	)
	if err == nil {
		slog.Info(
			"requested pages build",
			"url", build.GetURL(),
			"status", build.GetStatus(),
		)

		return build.GetURL(), nil
	}

	// HTTP 404: Pages is not enabled for the
	// repository.
	if resp != nil &&
		resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf(
			"%s: pages not enabled for %s/%s: %w",
			errCtx, p.repoOwner, p.repo, err,
		)
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
				"github response",
				"body", string(rb),
			)
		}
	}

	return "", fmt.Errorf("%s: %w", errCtx, err)
}
