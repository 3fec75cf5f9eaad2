package git

import (
	"context"
	"fmt"
	"os"
	oe "os/exec"
	"path/filepath"
	"strings"

	"github.com/byte4ever/pages_publisher/pages/exec"
)

// Worktree is a publish repository living inside a built
// output directory. Create with InitPublishRepo.
type Worktree struct {
	// Dir is the output directory holding the site.
	Dir string
	// RemoteName is the name of the upstream remote.
	RemoteName string
}

// HeadShortHash resolves the short revision hash of the
// checkout at dir. Pass empty dir to use the current
// working directory.
func HeadShortHash(dir string) (string, error) {
	const errCtx = "resolving source revision"

	out, err := exec.Ex(
		dir, "git", "rev-parse", "--short", "HEAD",
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(out), nil
}

// InitPublishRepo discards any repository metadata already
// present in dir and initializes a fresh one, so each
// publish starts from a clean history regardless of what a
// previous run left behind.
//
//nolint:gosec // dir originates from CLI flags
func InitPublishRepo(dir string) (*Worktree, error) {
	const errCtx = "initializing publish repository"

	gitDir := filepath.Join(dir, ".git")

	if err := os.RemoveAll(gitDir); err != nil {
		return nil, fmt.Errorf(
			"%s: remove old metadata: %w", errCtx, err,
		)
	}

	exec.MustEx(dir, "git", "init")

	return &Worktree{
		Dir:        dir,
		RemoteName: "origin",
	}, nil
}

// SetIdentity configures the commit author name and email
// locally in the publish repository.
func (w *Worktree) SetIdentity(name, email string) {
	exec.MustEx(
		w.Dir, "git",
		"config", "--local", "user.name", name,
	)
	exec.MustEx(
		w.Dir, "git",
		"config", "--local", "user.email", email,
	)
}

// AddRemote registers the upstream remote. The URL may
// embed an access token; register it with
// exec.RegisterSecret first so it never reaches logs.
func (w *Worktree) AddRemote(url string) {
	exec.MustEx(
		w.Dir, "git",
		"remote", "add", w.RemoteName, url,
	)
}

// FetchBranch fetches the named branch from the remote.
// The fetched tip lands in FETCH_HEAD.
func (w *Worktree) FetchBranch(branch string) {
	exec.MustEx(
		w.Dir, "git",
		"fetch", "--no-tags", w.RemoteName, branch,
	)
}

// ResetToFetched moves the current branch and index to the
// fetched tip while leaving the working tree untouched, so
// the freshly built site stays in place and the next
// commit layers on top of the published history.
func (w *Worktree) ResetToFetched() {
	exec.MustEx(w.Dir, "git", "reset", "FETCH_HEAD")
}

// StageAll stages every change in the working tree,
// including deletions of files removed since the last
// publish.
func (w *Worktree) StageAll() {
	exec.MustEx(w.Dir, "git", "add", "-A")
}

// HasStagedChanges reports whether the index differs from
// HEAD. Returns false on error.
func (w *Worktree) HasStagedChanges() bool {
	// diff-index exits 1 when there are differences.
	//nolint:gosec // args are constants
	cmd := oe.CommandContext(
		context.Background(),
		"git", "diff-index", "--quiet", "HEAD", "--",
	)
	cmd.Dir = w.Dir

	return cmd.Run() != nil
}

// LastCommitMessage returns the most recent commit message
// on the current branch. Returns empty string on error,
// including the unborn-branch case before ResetToFetched.
func (w *Worktree) LastCommitMessage() string {
	msg, err := exec.Ex(
		w.Dir, "git", "log", "-1", "--pretty=%B",
	)
	if err != nil {
		return ""
	}

	return msg
}

// Commit records the staged changes with the given
// message. When allowEmpty is set a commit is created even
// if the index matches HEAD.
func (w *Worktree) Commit(message string, allowEmpty bool) {
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}

	exec.MustEx(w.Dir, "git", args...)
}

// HeadHash returns the full hash of the current HEAD
// commit. Returns empty string on error.
func (w *Worktree) HeadHash() string {
	out, err := exec.Ex(
		w.Dir, "git", "rev-parse", "HEAD",
	)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(out)
}

// Push force-pushes HEAD to the named branch on the
// remote. The commit layers on the fetched tip, so the
// force only matters when the remote moved underneath us.
func (w *Worktree) Push(branch string) {
	exec.MustEx(
		w.Dir, "git",
		"push", "-f", w.RemoteName,
		"HEAD:"+branch,
	)
}
