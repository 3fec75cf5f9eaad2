// Package git provides the repository operations behind a pages
// publish: resolving the source revision, initializing a throwaway
// repository inside the built output directory, layering it onto the
// fetched history of the pages branch, and pushing the result.
//
// Worktree wraps the output directory once InitPublishRepo has run.
// All operations shell out to the git CLI through the exec package,
// so any token embedded in the remote URL must be registered with
// exec.RegisterSecret before AddRemote is called.
package git
