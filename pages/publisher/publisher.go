package publisher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/byte4ever/pages_publisher/pages/commitmsg"
	"github.com/byte4ever/pages_publisher/pages/digest"
	"github.com/byte4ever/pages_publisher/pages/exec"
	"github.com/byte4ever/pages_publisher/pages/git"
	"github.com/byte4ever/pages_publisher/pages/site"
)

// Config holds all settings for a publish run. Use a
// Config struct instead of many arguments.
type Config struct {
	// SourceDir is the source checkout whose revision
	// annotates the publish commit (empty means the
	// current working directory).
	SourceDir string

	// OutputDir is the pre-built site directory to
	// publish. It must exist and be non-empty.
	OutputDir string

	// Branch is the pages branch on the remote
	// (default "gh-pages").
	Branch string

	// RemoteURL is the upstream repository URL,
	// usually with the access token embedded.
	RemoteURL string

	// Token is the access credential. It is registered
	// with the exec layer so it never reaches logs.
	Token string

	// CommitName is the commit author name.
	CommitName string

	// CommitEmail is the commit author email.
	CommitEmail string

	// MessageTemplate is the commit subject template
	// with {REVISION} and {BRANCH} placeholders.
	// Empty means commitmsg.DefaultTemplate.
	MessageTemplate string

	// SkipUnchanged stops without committing or
	// pushing when the built tree matches the
	// published tip. When false an empty rebuild
	// commit is recorded instead.
	SkipUnchanged bool

	// DryRun performs every local step including the
	// commit but skips the push and build request.
	DryRun bool

	// Host optionally requests a pages build after a
	// successful push.
	Host site.PageHost

	// SummaryPath optionally receives a JSON report of
	// the run.
	SummaryPath string
}

// Run executes the full publish workflow. It returns a
// Report describing the run; on error the report is nil
// and the output directory may hold a partially
// initialized repository, which the next run discards.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	const errCtx = "publishing pages"

	start := time.Now()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	exec.RegisterSecret(cfg.Token)

	// Step 1: Resolve the source revision.
	revision, err := git.HeadShortHash(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: resolve revision: %w", errCtx, err,
		)
	}

	// Step 2: Digest the built tree before any
	// repository metadata lands in it.
	dg, err := digest.Tree(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: digest output: %w", errCtx, err,
		)
	}

	files, err := countFiles(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: count files: %w", errCtx, err,
		)
	}

	slog.Info(
		"publishing",
		"revision", revision,
		"branch", cfg.Branch,
		"files", files,
	)

	// Step 3: Fresh repository over the output
	// directory, layered on the published history.
	wt, err := git.InitPublishRepo(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: init repository: %w", errCtx, err,
		)
	}

	wt.SetIdentity(cfg.CommitName, cfg.CommitEmail)
	wt.AddRemote(cfg.RemoteURL)
	wt.FetchBranch(cfg.Branch)
	wt.ResetToFetched()

	prevDigest := commitmsg.ExtractDigest(
		wt.LastCommitMessage(),
	)

	// Step 4: Stage everything, deletions included.
	wt.StageAll()

	report := &Report{
		Revision: revision,
		Branch:   cfg.Branch,
		Digest:   dg,
		Files:    files,
	}

	// Step 5: Explicit empty-change handling, instead
	// of touching a file to force a diff. The tree
	// counts as unchanged when nothing is staged, or
	// when the content digest matches the published
	// tip even though git noticed metadata churn
	// (mode bits and the like).
	unchanged := !wt.HasStagedChanges()

	if !unchanged && prevDigest != "" && prevDigest == dg {
		slog.Info(
			"content digest matches published tip",
			"digest", dg,
		)

		unchanged = true
	}

	if unchanged && cfg.SkipUnchanged {
		slog.Info(
			"tree unchanged, skipping publish",
			"revision", revision,
		)

		report.Skipped = true

		return finish(report, cfg, start)
	}

	if unchanged {
		slog.Info(
			"tree unchanged, recording empty rebuild",
			"revision", revision,
		)
	}

	// Step 6: Commit and push.
	msg := commitmsg.Generate(
		cfg.MessageTemplate, revision, cfg.Branch, dg,
	)

	wt.Commit(msg, unchanged)

	report.Commit = wt.HeadHash()

	if cfg.DryRun {
		slog.Info(
			"dry run: skipping push",
			"commit", report.Commit,
		)

		return finish(report, cfg, start)
	}

	wt.Push(cfg.Branch)

	report.Pushed = true

	// Step 7: Ask the hosting platform to rebuild.
	if cfg.Host != nil {
		buildURL, buildErr := cfg.Host.RequestBuild(
			ctx, cfg.Branch,
		)
		if buildErr != nil {
			return nil, fmt.Errorf(
				"%s: request build: %w",
				errCtx, buildErr,
			)
		}

		report.BuildURL = buildURL
	}

	return finish(report, cfg, start)
}

// finish stamps the duration and writes the summary file
// when configured.
func finish(
	report *Report,
	cfg Config,
	start time.Time,
) (*Report, error) {
	const errCtx = "finishing publish"

	report.DurationMS = time.Since(start).Milliseconds()

	if cfg.SummaryPath != "" {
		if err := report.WriteFile(
			cfg.SummaryPath,
		); err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}
	}

	slog.Info(
		"publish finished",
		"revision", report.Revision,
		"commit", report.Commit,
		"pushed", report.Pushed,
		"skipped", report.Skipped,
	)

	return report, nil
}

// validate checks the configuration and applies defaults.
// The output directory must exist and contain at least
// one entry: publishing an empty site is treated as a
// hard error rather than left to git's default behavior.
func validate(cfg *Config) error {
	const errCtx = "validating config"

	if cfg.Token == "" {
		return fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.RemoteURL == "" {
		return fmt.Errorf(
			"%s: remote url must be set", errCtx,
		)
	}

	if cfg.CommitName == "" || cfg.CommitEmail == "" {
		return fmt.Errorf(
			"%s: commit identity must be set", errCtx,
		)
	}

	if cfg.Branch == "" {
		cfg.Branch = "gh-pages"
	}

	fi, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf(
			"%s: output dir: %w", errCtx, err,
		)
	}

	if !fi.IsDir() {
		return fmt.Errorf(
			"%s: output dir %s is not a directory",
			errCtx, cfg.OutputDir,
		)
	}

	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf(
			"%s: output dir: %w", errCtx, err,
		)
	}

	if len(entries) == 0 {
		return fmt.Errorf(
			"%s: output dir %s is empty",
			errCtx, cfg.OutputDir,
		)
	}

	return nil
}

// countFiles counts regular files under dir, skipping
// repository metadata.
func countFiles(dir string) (int, error) {
	count := 0

	err := filepath.WalkDir(
		dir,
		func(
			path string,
			de fs.DirEntry,
			walkErr error,
		) error {
			if walkErr != nil {
				return walkErr
			}

			if de.IsDir() {
				if de.Name() == ".git" {
					return filepath.SkipDir
				}

				return nil
			}

			count++

			return nil
		},
	)
	if err != nil {
		return 0, err
	}

	return count, nil
}
