package edgegate

import (
	"io"

	internalaudit "github.com/lumivoice/edgegate/internal/audit"
)

// RoleAdmin is the role value that grants unconditional access to the admin
// subtree and to owner-scoped resources.
const RoleAdmin = "admin"

// Diagnostic headers attached to responses whose mutation triggered a cache
// partition invalidation. Their presence/absence is the observable contract
// for downstream consumers checking cache freshness.
const (
	HeaderCacheInvalidated   = "X-Cache-Invalidated"
	HeaderCacheUserID        = "X-Cache-User-Id"
	HeaderCacheInvalidatedBy = "X-Cache-Invalidated-By"
)

// Principal is the authenticated identity derived from a verified credential.
// It is constructed per-request by [Gateway.Authenticate], never persisted,
// and discarded at end of request.
//
// ID is the effective user identifier (user_metadata.sub when present, else
// the top-level subject) — the only identifier valid for cache partitioning.
type Principal struct {
	ID         string
	Subject    string
	Email      string
	Role       string
	SuperAdmin bool
}

// Admin reports whether the principal may enter the protected admin subtree.
func (p Principal) Admin() bool {
	return p.SuperAdmin || p.Role == RoleAdmin
}

// AuditEvent is a structured audit record emitted by the gateway.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the gateway's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// Audit event types emitted by the gateway.
const (
	// EventAPIRequest records a request whose path matched the logger's
	// include list. Best-effort: emission never blocks or fails the request.
	EventAPIRequest = "api_request"
	// EventAdminRejected records an admin-subtree request terminated with
	// 401 or 403 before reaching the business handler.
	EventAdminRejected = "admin_rejected"
	// EventCacheInvalidated records a fired partition invalidation.
	EventCacheInvalidated = "cache_invalidated"
	// EventCacheInvalidationFailed records a captured invalidation backend
	// failure. The request's own response is unaffected.
	EventCacheInvalidationFailed = "cache_invalidation_failed"
	// EventIdentityUnresolved records a qualifying mutation whose credential
	// yielded no cache identity; invalidation was skipped.
	EventIdentityUnresolved = "cache_identity_unresolved"
)
