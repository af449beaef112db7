// Package edgegate provides the request-gating and cache-invalidation control
// plane for a multi-tenant API: JWT verification of bearer credentials, an
// admin-subtree request gate, glob-pattern route matching, and best-effort
// per-user cache partition invalidation on successful mutations.
//
// The package is designed for concurrent server workloads: Gateway methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// edgegate is the public surface. It exposes [Gateway], [Builder], [Config],
// and value types (Principal, AuditEvent, MetricsSnapshot). Credential
// verification lives in token/, glob matching in pathmatch/, the cache backend
// contract in cache/, HTTP adapters in middleware/, and audit sink models under
// internal/.
//
// # What this package must NOT do
//
//   - Issue tokens or manage sessions (verification only).
//   - Block a request on cache invalidation; invalidation is fire-and-forget
//     with failures captured by audit events and metrics.
//   - Alter a successful business response because of any invalidation-path
//     failure; only authentication and authorization outcomes may change an
//     HTTP status.
//
// # Performance contract
//
// Authenticate is the hot path. It performs one HMAC verification and no I/O.
// Pattern checks are precompiled regex matches; the pattern set takes a read
// lock only.
package edgegate
