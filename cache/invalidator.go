package cache

import "context"

// Invalidator removes every entry in a user's cache partition.
//
// Implementations must be idempotent and safe for concurrent use. The deleted
// count is advisory; callers treat success/failure as the only signal.
type Invalidator interface {
	InvalidateAll(ctx context.Context, userID string) (int, error)
}

// NoOpInvalidator satisfies [Invalidator] without touching any backend.
// Used when no cache is wired; every call reports zero deletions.
type NoOpInvalidator struct{}

// InvalidateAll does nothing and reports zero deletions.
func (NoOpInvalidator) InvalidateAll(context.Context, string) (int, error) {
	return 0, nil
}
