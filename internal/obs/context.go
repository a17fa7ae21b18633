package obs

import "context"

type routePatternKey struct{}

// WithRoutePattern records the chi route pattern that matched the request, so
// metric and log labels use "/api/v1/quotes/{id}" instead of raw paths.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if pattern == "" {
		return ctx
	}
	return context.WithValue(ctx, routePatternKey{}, pattern)
}

// RoutePatternFromContext returns the matched route pattern, or "" when no
// pattern was recorded.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routePatternKey{}).(string)
	return pattern
}
