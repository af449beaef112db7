package internaldefs

import (
	edgegate "github.com/lumivoice/edgegate"
)

// CounterDef binds a gateway metric ID to its stable exported name.
type CounterDef struct {
	ID   edgegate.MetricID
	Name string
	Help string
}

// HistogramDef binds a gateway histogram ID to its stable exported name.
type HistogramDef struct {
	ID   edgegate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported gateway counter. Order is the exposition
// order of the Prometheus exporter.
var CounterDefs = []CounterDef{
	{ID: edgegate.MetricAuthSuccess, Name: "edgegate_auth_success_total", Help: "Credentials verified into a principal."},
	{ID: edgegate.MetricAuthFailure, Name: "edgegate_auth_failure_total", Help: "Credential verification failures."},
	{ID: edgegate.MetricAuthMissingCredential, Name: "edgegate_auth_missing_credential_total", Help: "Requests with no extractable credential."},
	{ID: edgegate.MetricAdminAllowed, Name: "edgegate_admin_allowed_total", Help: "Admin-subtree requests that passed the gate."},
	{ID: edgegate.MetricAdminUnauthorized, Name: "edgegate_admin_unauthorized_total", Help: "Admin-subtree requests rejected with 401."},
	{ID: edgegate.MetricAdminForbidden, Name: "edgegate_admin_forbidden_total", Help: "Admin-subtree requests rejected with 403."},
	{ID: edgegate.MetricInvalidationTriggered, Name: "edgegate_invalidation_triggered_total", Help: "Fired cache partition invalidations."},
	{ID: edgegate.MetricInvalidationIdentityUnresolved, Name: "edgegate_invalidation_identity_unresolved_total", Help: "Qualifying mutations with no resolvable cache identity."},
	{ID: edgegate.MetricInvalidationFailure, Name: "edgegate_invalidation_failure_total", Help: "Captured invalidation backend failures."},
	{ID: edgegate.MetricRequestLogged, Name: "edgegate_request_logged_total", Help: "Audit-logged API requests."},
}

// HistogramDefs lists every exported gateway histogram.
var HistogramDefs = []HistogramDef{
	{ID: edgegate.MetricVerifyLatency, Name: "edgegate_verify_latency_seconds", Help: "Credential verification latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, Prometheus le label
// form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds as instrument-name-safe
// suffixes for exporters that cannot carry an le label.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
