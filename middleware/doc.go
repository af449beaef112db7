// Package middleware exposes HTTP middleware adapters for admin gating,
// best-effort request logging, and post-response cache invalidation built on
// top of edgegate.Gateway decisions.
//
// # Handlers
//
//   - [Dispatch] — the full ordered pipeline: logging, then the admin gate,
//     then cache invalidation around the business handler.
//   - [AdminGate] — stand-alone admin subtree enforcement.
//   - [CacheInvalidation] — stand-alone mutation-triggered invalidation.
//   - [RequestLogger] — stand-alone audit logging of API traffic.
//   - [RequireAction] — ownership-scoped authorization for a single route.
//
// Each adapter reads the request, calls the corresponding Gateway method, and
// translates the outcome to HTTP. Rejections from the admin gate carry a fixed
// JSON body and never reach the wrapped handler.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gateway calls. It does NOT
// implement authentication, matching, or invalidation logic itself — all
// decisions are delegated to the Gateway.
//
// # What this package must NOT do
//
//   - Parse or verify tokens directly (delegates to Gateway).
//   - Access the cache backend (Gateway handles I/O).
//   - Block or fail a business response on invalidation or logging outcomes.
package middleware
