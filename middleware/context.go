package middleware

import (
	"context"

	edgegate "github.com/lumivoice/edgegate"
)

type principalContextKey struct{}

// PrincipalFromContext returns the verified principal injected by [AdminGate],
// if any.
func PrincipalFromContext(ctx context.Context) (edgegate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(edgegate.Principal)
	return p, ok
}

func withPrincipal(ctx context.Context, p edgegate.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}
