// Package github implements a site.PageHost that requests GitHub
// Pages builds (cloud or enterprise). Configure with a Config
// containing the repository owner, name, and personal access token.
// Set EnterpriseHost for GitHub Enterprise installations.
package github
