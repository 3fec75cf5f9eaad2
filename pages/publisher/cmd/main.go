// Command publish_pages publishes a pre-built static site
// directory to a pages branch. It layers the new content
// on the published history, commits with the source
// revision in the message, force-pushes the branch, and
// optionally asks the hosting platform to rebuild the
// site.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/pages_publisher/pages/commitmsg"
	"github.com/byte4ever/pages_publisher/pages/publisher"
	"github.com/byte4ever/pages_publisher/pages/site"
	"github.com/byte4ever/pages_publisher/pages/site/github"
	"github.com/byte4ever/pages_publisher/pages/site/gitlab"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running publish_pages"

	configPath := flag.String(
		"config", "",
		"Optional YAML config file",
	)

	// Directory flags.
	sourceDir := flag.String(
		"source_dir", "",
		"Source checkout for revision resolution "+
			"(default: current directory)",
	)
	outputDir := flag.String(
		"output_dir", "public",
		"Pre-built site directory to publish",
	)

	// Branch and remote flags.
	branch := flag.String(
		"branch", "gh-pages",
		"Pages branch on the remote",
	)
	remoteURL := flag.String(
		"remote_url", "",
		"Full remote URL (overrides the URL built "+
			"from server, owner, and repo)",
	)

	// Hosting platform flags.
	gitServer := flag.String(
		"git_server", "github",
		"Git hosting platform: github or gitlab",
	)
	repoOwner := flag.String(
		"repo_owner", "",
		"Repository owner or group",
	)
	repo := flag.String(
		"repo", "",
		"Repository name (without owner)",
	)
	ghEnterprise := flag.String(
		"github_enterprise_host", "",
		"GitHub Enterprise hostname",
	)
	glHost := flag.String(
		"gitlab_host", "",
		"GitLab instance URL",
	)

	// Credential flags.
	tokenEnv := flag.String(
		"token_env", "GH_TOKEN",
		"Environment variable holding the access "+
			"token",
	)

	// Commit flags.
	commitName := flag.String(
		"commit_name", "Pages Publisher",
		"Commit author name",
	)
	commitEmail := flag.String(
		"commit_email",
		"pages-publisher@users.noreply.github.com",
		"Commit author email",
	)
	messageTemplate := flag.String(
		"message_template", commitmsg.DefaultTemplate,
		"Commit subject template with {REVISION} "+
			"and {BRANCH} placeholders",
	)

	// Behavior flags.
	skipUnchanged := flag.Bool(
		"skip_unchanged", false,
		"Skip commit and push when the tree matches "+
			"the published tip",
	)
	dryRun := flag.Bool(
		"dry_run", false,
		"Skip push and build request",
	)
	requestBuild := flag.Bool(
		"request_build", false,
		"Request a hosting-platform build after push",
	)
	summaryPath := flag.String(
		"summary_json", "",
		"Write a JSON publish report to this path",
	)

	flag.Parse()

	// Flags set on the command line win over the
	// config file, which wins over built-in defaults.
	set := make(map[string]bool)

	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if *configPath != "" {
		fc, err := publisher.LoadFileConfig(*configPath)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		applyFileConfig(fc, set, fileTargets{
			sourceDir:       sourceDir,
			outputDir:       outputDir,
			branch:          branch,
			remoteURL:       remoteURL,
			gitServer:       gitServer,
			repoOwner:       repoOwner,
			repo:            repo,
			ghEnterprise:    ghEnterprise,
			glHost:          glHost,
			tokenEnv:        tokenEnv,
			commitName:      commitName,
			commitEmail:     commitEmail,
			messageTemplate: messageTemplate,
			skipUnchanged:   skipUnchanged,
			requestBuild:    requestBuild,
			summaryPath:     summaryPath,
		})
	}

	token := os.Getenv(*tokenEnv)
	if token == "" {
		return fmt.Errorf(
			"%s: environment variable %s must be set",
			errCtx, *tokenEnv,
		)
	}

	remote := *remoteURL
	if remote == "" {
		var err error

		remote, err = buildRemoteURL(remoteParams{
			server:       *gitServer,
			owner:        *repoOwner,
			repo:         *repo,
			ghEnterprise: *ghEnterprise,
			glHost:       *glHost,
			token:        token,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	var host site.PageHost

	if *requestBuild && !*dryRun {
		var err error

		host, err = newPageHost(hostParams{
			server:       *gitServer,
			owner:        *repoOwner,
			repo:         *repo,
			ghEnterprise: *ghEnterprise,
			glHost:       *glHost,
			token:        token,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	cfg := publisher.Config{
		SourceDir:       *sourceDir,
		OutputDir:       *outputDir,
		Branch:          *branch,
		RemoteURL:       remote,
		Token:           token,
		CommitName:      *commitName,
		CommitEmail:     *commitEmail,
		MessageTemplate: *messageTemplate,
		SkipUnchanged:   *skipUnchanged,
		DryRun:          *dryRun,
		Host:            host,
		SummaryPath:     *summaryPath,
	}

	if _, err := publisher.Run(
		context.Background(), cfg,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// fileTargets bundles the flag destinations that a config
// file may seed.
type fileTargets struct {
	sourceDir       *string
	outputDir       *string
	branch          *string
	remoteURL       *string
	gitServer       *string
	repoOwner       *string
	repo            *string
	ghEnterprise    *string
	glHost          *string
	tokenEnv        *string
	commitName      *string
	commitEmail     *string
	messageTemplate *string
	skipUnchanged   *bool
	requestBuild    *bool
	summaryPath     *string
}

// applyFileConfig copies non-zero config file values into
// flags that were not set on the command line.
func applyFileConfig(
	fc *publisher.FileConfig,
	set map[string]bool,
	dst fileTargets,
) {
	applyStr := func(name, val string, p *string) {
		if val != "" && !set[name] {
			*p = val
		}
	}

	applyStr("source_dir", fc.SourceDir, dst.sourceDir)
	applyStr("output_dir", fc.OutputDir, dst.outputDir)
	applyStr("branch", fc.Branch, dst.branch)
	applyStr("remote_url", fc.RemoteURL, dst.remoteURL)
	applyStr("git_server", fc.GitServer, dst.gitServer)
	applyStr("repo_owner", fc.RepoOwner, dst.repoOwner)
	applyStr("repo", fc.Repo, dst.repo)
	applyStr(
		"github_enterprise_host",
		fc.GithubEnterpriseHost,
		dst.ghEnterprise,
	)
	applyStr("gitlab_host", fc.GitlabHost, dst.glHost)
	applyStr("token_env", fc.TokenEnv, dst.tokenEnv)
	applyStr(
		"commit_name", fc.CommitName, dst.commitName,
	)
	applyStr(
		"commit_email", fc.CommitEmail, dst.commitEmail,
	)
	applyStr(
		"message_template",
		fc.MessageTemplate,
		dst.messageTemplate,
	)
	applyStr(
		"summary_json", fc.SummaryPath, dst.summaryPath,
	)

	if fc.SkipUnchanged && !set["skip_unchanged"] {
		*dst.skipUnchanged = true
	}

	if fc.RequestBuild && !set["request_build"] {
		*dst.requestBuild = true
	}
}

// remoteParams bundles what buildRemoteURL needs to form
// a token-authenticated remote URL.
type remoteParams struct {
	server       string
	owner        string
	repo         string
	ghEnterprise string
	glHost       string
	token        string
}

// buildRemoteURL forms the upstream URL with the token
// embedded, per hosting platform.
func buildRemoteURL(rp remoteParams) (string, error) {
	const errCtx = "building remote url"

	if rp.owner == "" || rp.repo == "" {
		return "", fmt.Errorf(
			"%s: repo owner and repo must be set "+
				"when no remote url is given", errCtx,
		)
	}

	switch rp.server {
	case "github":
		host := "github.com"
		if rp.ghEnterprise != "" {
			host = rp.ghEnterprise
		}

		return fmt.Sprintf(
			"https://%s@%s/%s/%s.git",
			rp.token, host, rp.owner, rp.repo,
		), nil

	case "gitlab":
		host := "gitlab.com"
		if rp.glHost != "" {
			host = strings.TrimPrefix(
				strings.TrimPrefix(
					rp.glHost, "https://",
				),
				"http://",
			)
		}

		return fmt.Sprintf(
			"https://oauth2:%s@%s/%s/%s.git",
			rp.token, host, rp.owner, rp.repo,
		), nil

	default:
		return "", fmt.Errorf(
			"%s: unknown server %q",
			errCtx, rp.server,
		)
	}
}

// hostParams bundles provider-specific values to keep
// newPageHost under the 4-argument limit.
type hostParams struct {
	server       string
	owner        string
	repo         string
	ghEnterprise string
	glHost       string
	token        string
}

// newPageHost creates a site.PageHost based on the server
// name. Pattern: Factory -- selects platform
// implementation at runtime.
func newPageHost(hp hostParams) (site.PageHost, error) {
	const errCtx = "creating page host"

	switch hp.server {
	case "github":
		p, err := github.NewProvider(github.Config{
			RepoOwner:      hp.owner,
			Repo:           hp.repo,
			AccessToken:    hp.token,
			EnterpriseHost: hp.ghEnterprise,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return p, nil

	case "gitlab":
		p, err := gitlab.NewProvider(gitlab.Config{
			Host:        hp.glHost,
			Repo:        hp.owner + "/" + hp.repo,
			AccessToken: hp.token,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return p, nil

	default:
		return nil, fmt.Errorf(
			"%s: unknown server %q", errCtx, hp.server,
		)
	}
}
