// Package publisher orchestrates publishing a built static site to a
// pages branch. It resolves the source revision, initializes a fresh
// repository inside the output directory, layers the new content on
// the fetched tip of the pages branch, commits with a templated
// message carrying a content digest, and force-pushes the result.
// Optionally it requests a hosting-platform build via a site.PageHost
// and writes a JSON summary of the run.
//
// The main entry point is Run, which accepts a Config struct with all
// parameters for the workflow. The sequence is strictly linear and
// fail-fast: the first failing step aborts the publish with no
// rollback of the partially initialized repository.
package publisher
