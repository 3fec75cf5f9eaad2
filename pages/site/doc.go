// Package site provides a strategy interface for hosting-platform
// actions that follow a pages push.
//
// The PageHost interface abstracts the post-push build request.
// Implementations exist for GitHub Pages and GitLab Pages in
// sub-packages. PageHostFunc is a convenience adapter that lets plain
// functions satisfy the interface.
package site
