package edgegate

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lumivoice/edgegate/cache"
	"github.com/lumivoice/edgegate/pathmatch"
	"github.com/lumivoice/edgegate/token"
)

// Gateway is the request-gating and cache-invalidation control plane. It is
// constructed through [Builder.Build] and safe for concurrent use.
type Gateway struct {
	config       Config
	verifier     *token.Verifier
	invalidation *pathmatch.Set
	invalidator  cache.Invalidator
	audit        *auditDispatcher
	metrics      *Metrics

	pending sync.WaitGroup
	closed  atomic.Bool
}

var mutationMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
	http.MethodPatch:  {},
}

// Authenticate verifies raw (a bearer value with the "Bearer " prefix already
// stripped) and returns the resolved [Principal].
//
// All verification failures collapse to [ErrMissingCredential],
// [ErrConfigurationMissing], or [ErrInvalidCredential]; callers surface every
// one of them as the same generic 401.
func (g *Gateway) Authenticate(raw string) (Principal, error) {
	if g == nil || g.verifier == nil {
		return Principal{}, ErrGatewayNotReady
	}

	start := time.Now()
	claims, err := g.verifier.Verify(raw)
	g.metrics.Observe(MetricVerifyLatency, time.Since(start))

	if err != nil {
		switch {
		case errors.Is(err, token.ErrMissingToken):
			g.metrics.Inc(MetricAuthMissingCredential)
			return Principal{}, ErrMissingCredential
		case errors.Is(err, token.ErrSecretMissing):
			g.metrics.Inc(MetricAuthFailure)
			return Principal{}, ErrConfigurationMissing
		default:
			g.metrics.Inc(MetricAuthFailure)
			return Principal{}, errors.Join(ErrInvalidCredential, err)
		}
	}

	g.metrics.Inc(MetricAuthSuccess)
	return Principal{
		ID:         claims.EffectiveUserID(),
		Subject:    claims.Subject,
		Email:      claims.Email,
		Role:       claims.Role(),
		SuperAdmin: claims.SuperAdmin(),
	}, nil
}

// AuthenticateRequest extracts the credential from r (Authorization header
// first, session cookies second) and verifies it.
func (g *Gateway) AuthenticateRequest(r *http.Request) (Principal, error) {
	raw, ok := CredentialFromRequest(r)
	if !ok {
		if g != nil {
			g.metrics.Inc(MetricAuthMissingCredential)
		}
		return Principal{}, ErrMissingCredential
	}
	return g.Authenticate(raw)
}

// AuthorizeAdmin enforces the admin gate for r and returns the resolved
// [Principal] on success. Rejections come back as [ErrMissingCredential],
// [ErrConfigurationMissing], or [ErrInvalidCredential] (no verified identity)
// or [ErrInsufficientPermission] (verified, but not admin). Metrics and audit
// events are recorded here so HTTP adapters only translate the outcome.
func (g *Gateway) AuthorizeAdmin(r *http.Request) (Principal, error) {
	p, err := g.AuthenticateRequest(r)
	if err != nil {
		g.metrics.Inc(MetricAdminUnauthorized)
		g.audit.Emit(r.Context(), AuditEvent{
			Timestamp: time.Now(),
			EventType: EventAdminRejected,
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    http.StatusUnauthorized,
			IP:        clientIP(r),
			Success:   false,
			Error:     err.Error(),
		})
		return Principal{}, err
	}

	if !p.Admin() {
		g.metrics.Inc(MetricAdminForbidden)
		g.audit.Emit(r.Context(), AuditEvent{
			Timestamp: time.Now(),
			EventType: EventAdminRejected,
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    http.StatusForbidden,
			UserID:    p.ID,
			IP:        clientIP(r),
			Success:   false,
			Error:     ErrInsufficientPermission.Error(),
		})
		return Principal{}, ErrInsufficientPermission
	}

	g.metrics.Inc(MetricAdminAllowed)
	return p, nil
}

// CacheIdentity resolves the effective user identifier from r's credential for
// cache partitioning. Failure here is always soft: callers skip invalidation
// and leave the business response untouched.
func (g *Gateway) CacheIdentity(r *http.Request) (string, error) {
	if g == nil || g.verifier == nil {
		return "", ErrGatewayNotReady
	}

	raw, ok := CredentialFromRequest(r)
	if !ok {
		return "", ErrIdentityUnresolvable
	}

	claims, err := g.verifier.Verify(raw)
	if err != nil {
		return "", errors.Join(ErrIdentityUnresolvable, err)
	}
	return claims.EffectiveUserID(), nil
}

// AdminPath reports whether path falls under the protected admin subtree.
func (g *Gateway) AdminPath(path string) bool {
	if g == nil || !g.config.Admin.Enabled {
		return false
	}
	return strings.HasPrefix(path, g.config.Admin.Prefix)
}

// ShouldInvalidate reports whether a request with the given method and path
// qualifies for cache invalidation, pending a successful response status.
func (g *Gateway) ShouldInvalidate(method, path string) bool {
	if g == nil {
		return false
	}
	if _, ok := mutationMethods[strings.ToUpper(method)]; !ok {
		return false
	}
	return g.invalidation.Matches(path)
}

// ShouldLog reports whether a request to path qualifies for audit logging.
func (g *Gateway) ShouldLog(path string) bool {
	if g == nil || !g.config.Logger.Enabled || g.audit == nil {
		return false
	}
	for _, prefix := range g.config.Logger.ExcludePaths {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	for _, prefix := range g.config.Logger.IncludePaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// LogRequest emits a best-effort audit event for r. It never blocks and never
// fails the request; under backpressure the event is counted as dropped.
func (g *Gateway) LogRequest(r *http.Request) {
	if g == nil || g.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		RequestID: uuid.NewString(),
		EventType: EventAPIRequest,
		Method:    r.Method,
		Path:      r.URL.Path,
		IP:        clientIP(r),
		Success:   true,
	}

	if g.config.Logger.Detailed {
		event.Metadata = sanitizedHeaders(r.Header)
	} else {
		event.Metadata = map[string]string{
			"content-type": r.Header.Get("Content-Type"),
			"user-agent":   r.Header.Get("User-Agent"),
		}
	}

	g.audit.Emit(r.Context(), event)
	g.metrics.Inc(MetricRequestLogged)
}

// sanitizedHeaders copies request headers, dropping anything credential-bearing.
func sanitizedHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "authorization") ||
			strings.Contains(lower, "cookie") ||
			strings.Contains(lower, "token") {
			continue
		}
		if len(values) > 0 {
			out[lower] = values[0]
		}
	}
	return out
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	return r.RemoteAddr
}

// InvalidatePartition fires a detached, best-effort invalidation of userID's
// cache partition. The caller's response is never delayed: the call runs on
// its own goroutine with its own timeout, and any failure is captured by an
// audit event and a metric rather than propagated.
func (g *Gateway) InvalidatePartition(userID string) {
	if g == nil || g.invalidator == nil || g.closed.Load() {
		return
	}

	g.metrics.Inc(MetricInvalidationTriggered)
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), g.config.Invalidation.Timeout)
		defer cancel()

		deleted, err := g.invalidator.InvalidateAll(ctx, userID)
		if err != nil {
			g.metrics.Inc(MetricInvalidationFailure)
			g.audit.Emit(ctx, AuditEvent{
				Timestamp: time.Now(),
				EventType: EventCacheInvalidationFailed,
				UserID:    userID,
				Success:   false,
				Error:     err.Error(),
			})
			return
		}

		g.audit.Emit(ctx, AuditEvent{
			Timestamp: time.Now(),
			EventType: EventCacheInvalidated,
			UserID:    userID,
			Success:   true,
			Metadata:  map[string]string{"deleted": strconv.Itoa(deleted)},
		})
	}()
}

// ReportUnresolvedIdentity records a qualifying mutation whose credential
// yielded no cache identity. Warning-level only; the request proceeds.
func (g *Gateway) ReportUnresolvedIdentity(r *http.Request, cause error) {
	if g == nil {
		return
	}
	g.metrics.Inc(MetricInvalidationIdentityUnresolved)

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: EventIdentityUnresolved,
		Method:    r.Method,
		Path:      r.URL.Path,
		Success:   false,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	g.audit.Emit(r.Context(), event)
}

// EmitAudit queues event on the gateway's audit dispatcher.
func (g *Gateway) EmitAudit(ctx context.Context, event AuditEvent) {
	if g == nil {
		return
	}
	g.audit.Emit(ctx, event)
}

// Provenance returns the X-Cache-Invalidated-By header value.
func (g *Gateway) Provenance() string {
	if g == nil {
		return ""
	}
	return g.config.Invalidation.Provenance
}

// RegisterInvalidationPattern adds a glob pattern to the invalidation set at
// runtime. Registration is idempotent and safe under concurrent calls.
func (g *Gateway) RegisterInvalidationPattern(pattern string) error {
	if g == nil || g.invalidation == nil {
		return ErrGatewayNotReady
	}
	if err := g.invalidation.Add(pattern); err != nil {
		return errors.Join(ErrInvalidPattern, err)
	}
	return nil
}

// InvalidationPatterns returns a defensive copy of the registered patterns.
func (g *Gateway) InvalidationPatterns() []string {
	if g == nil {
		return nil
	}
	return g.invalidation.Patterns()
}

// MetricsSnapshot returns a point-in-time copy of all gateway metrics.
func (g *Gateway) MetricsSnapshot() MetricsSnapshot {
	if g == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return g.metrics.Snapshot()
}

// AuditDropped returns the number of audit events discarded under backpressure.
func (g *Gateway) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// Close waits for in-flight detached invalidations, then drains and stops the
// audit dispatcher. The gateway must not be used after Close.
func (g *Gateway) Close() {
	if g == nil {
		return
	}
	g.closed.Store(true)
	g.pending.Wait()
	g.audit.Close()
}
