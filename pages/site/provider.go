package site

import "context"

// Pattern: Strategy -- swap hosting platform without
// changing the publish flow.

// PageHost requests a pages build on a hosting platform
// after the branch has been pushed.
type PageHost interface {
	// RequestBuild asks the platform to rebuild the
	// site from the given branch and returns a URL
	// describing the triggered build.
	RequestBuild(
		ctx context.Context,
		branch string,
	) (string, error)
}

// PageHostFunc adapts a plain function to the PageHost
// interface.
type PageHostFunc func(
	ctx context.Context,
	branch string,
) (string, error)

// RequestBuild delegates to the wrapped function.
func (f PageHostFunc) RequestBuild(
	ctx context.Context,
	branch string,
) (string, error) {
	return f(ctx, branch)
}
