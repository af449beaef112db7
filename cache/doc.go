// Package cache defines the per-user cache partition contract consumed by the
// gateway's invalidation controller, plus a Redis-backed implementation.
//
// A partition is the set of derived-data entries keyed under one user id. The
// gateway's only obligation toward it is InvalidateAll: best-effort, idempotent
// removal of every entry in the partition. Concurrent invalidations of the
// same partition are benign — invalidating twice has the same effect as once.
//
// # What this package must NOT do
//
//   - Read, write, or interpret cached values; it deletes keys only.
//   - Decide when to invalidate (the middleware layer owns the trigger rules).
package cache
