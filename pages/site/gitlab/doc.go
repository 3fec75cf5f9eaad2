// Package gitlab implements a site.PageHost for GitLab Pages. GitLab
// deploys pages through CI, so requesting a build means triggering a
// pipeline on the pages branch. Configure with a Config containing
// the project path and an access token; set Host for self-managed
// instances.
package gitlab
