// Package commitmsg generates and parses publish commit messages. The
// subject line is rendered from a template with {REVISION} and
// {BRANCH} placeholders; the body carries the content digest of the
// published tree between marker lines so that a later run can read
// back what the tip of the pages branch contains.
package commitmsg
