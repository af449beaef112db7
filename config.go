package edgegate

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/lumivoice/edgegate/pathmatch"
)

// Config defines the gateway's behavior. Instances are set during
// initialization and then treated as immutable; [Builder.Build] deep-copies
// the value it is given.
type Config struct {
	Token        TokenConfig
	Admin        AdminConfig
	Invalidation InvalidationConfig
	Logger       LoggerConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig holds credential verification parameters. Tokens are HMAC-SHA256
// signed by the platform's identity provider; the gateway only verifies.
type TokenConfig struct {
	Secret        []byte
	Issuer        string
	Audience      string
	Leeway        time.Duration
	RequireExpiry bool
	MaxFutureIAT  time.Duration
}

/*
====================================
ADMIN GATE CONFIG
====================================
*/

// AdminConfig controls the protected admin subtree. Every request whose path
// falls under Prefix must present a verified credential with the admin role
// (or super admin flag) before any business handler runs.
type AdminConfig struct {
	Enabled bool
	Prefix  string
}

/*
====================================
CACHE INVALIDATION CONFIG
====================================
*/

// InvalidationConfig controls which successful mutations invalidate the
// caller's cache partition.
type InvalidationConfig struct {
	// Patterns are anchored glob rules (see pathmatch). A mutating request
	// matching any of them, completing with a 2xx status, triggers a
	// fire-and-forget partition invalidation.
	Patterns []string
	// Provenance is the X-Cache-Invalidated-By header value.
	Provenance string
	// Timeout bounds each detached invalidation call.
	Timeout time.Duration
	// RedisPrefix is the partition key namespace when the Redis backend is
	// built from a client handed to the Builder.
	RedisPrefix string
}

/*
====================================
REQUEST LOGGER CONFIG
====================================
*/

// LoggerConfig controls best-effort request audit logging. Include/exclude
// entries are path prefixes, not glob patterns.
type LoggerConfig struct {
	Enabled      bool
	IncludePaths []string
	ExcludePaths []string
	// Detailed adds sanitized request headers to the audit event metadata.
	// Authorization, cookie, and token headers are never recorded.
	Detailed bool
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull discards events under backpressure instead of blocking the
	// request path. Request logging requires this to stay best-effort.
	DropIfFull bool
}

// MetricsConfig controls in-process metric collection.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: admin gating under
// /api/admin, the standard invalidation subtrees, and request logging for
// /api excluding health probes. The token secret must still be supplied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Leeway:        30 * time.Second,
			RequireExpiry: true,
			MaxFutureIAT:  10 * time.Minute,
		},
		Admin: AdminConfig{
			Enabled: true,
			Prefix:  "/api/admin",
		},
		Invalidation: InvalidationConfig{
			Patterns: []string{
				"/api/business/**",
				"/api/ai-agents/**",
				"/api/customers/**",
				"/api/appointments/**",
			},
			Provenance:  "global-middleware",
			Timeout:     5 * time.Second,
			RedisPrefix: "mdc",
		},
		Logger: LoggerConfig{
			Enabled:      true,
			IncludePaths: []string{"/api"},
			ExcludePaths: []string{"/api/health", "/api/status", "/api/ping"},
			Detailed:     false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg

	out.Token.Secret = append([]byte(nil), cfg.Token.Secret...)
	out.Invalidation.Patterns = append([]string(nil), cfg.Invalidation.Patterns...)
	out.Logger.IncludePaths = append([]string(nil), cfg.Logger.IncludePaths...)
	out.Logger.ExcludePaths = append([]string(nil), cfg.Logger.ExcludePaths...)

	return out
}

// Validate checks the configuration for a buildable gateway.
//
// An empty token secret fails validation: a gateway that can verify nothing
// should refuse to build rather than silently 401 every request. Deployments
// that want the degraded run-anyway mode construct token.NewVerifier directly.
func (c *Config) Validate() error {
	if len(c.Token.Secret) == 0 {
		return ErrConfigurationMissing
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}
	if c.Token.MaxFutureIAT < 0 || c.Token.MaxFutureIAT > 24*time.Hour {
		return errors.New("Token MaxFutureIAT must be between 0 and 24h")
	}

	if c.Admin.Enabled {
		if !strings.HasPrefix(c.Admin.Prefix, "/") {
			return errors.New("Admin Prefix must start with '/'")
		}
	}

	for _, pattern := range c.Invalidation.Patterns {
		if _, err := pathmatch.Compile(pattern); err != nil {
			return errors.Join(ErrInvalidPattern, err)
		}
	}
	if c.Invalidation.Provenance == "" {
		return errors.New("Invalidation Provenance must not be empty")
	}
	if c.Invalidation.Timeout <= 0 {
		return errors.New("Invalidation Timeout must be > 0")
	}

	if c.Logger.Enabled {
		for _, p := range c.Logger.IncludePaths {
			if !strings.HasPrefix(p, "/") {
				return errors.New("Logger IncludePaths entries must start with '/'")
			}
		}
		for _, p := range c.Logger.ExcludePaths {
			if !strings.HasPrefix(p, "/") {
				return errors.New("Logger ExcludePaths entries must start with '/'")
			}
		}
	}

	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}

// Environment variable names read by [FromEnv].
const (
	EnvJWTSecret            = "EDGEGATE_JWT_SECRET"
	EnvAdminPrefix          = "EDGEGATE_ADMIN_PREFIX"
	EnvInvalidationPatterns = "EDGEGATE_INVALIDATION_PATTERNS"
	EnvLoggingEnabled       = "EDGEGATE_API_LOGGING_ENABLED"
	EnvLoggingPaths         = "EDGEGATE_API_LOGGING_PATHS"
	EnvLoggingExclude       = "EDGEGATE_API_LOGGING_EXCLUDE"
)

// FromEnv overlays process environment values onto cfg and returns the result.
// Unset variables leave the corresponding field untouched.
func FromEnv(cfg Config) Config {
	out := cloneConfig(cfg)

	if secret := os.Getenv(EnvJWTSecret); secret != "" {
		out.Token.Secret = []byte(secret)
	}
	if prefix := os.Getenv(EnvAdminPrefix); prefix != "" {
		out.Admin.Prefix = prefix
	}
	if patterns := os.Getenv(EnvInvalidationPatterns); patterns != "" {
		out.Invalidation.Patterns = splitEnvList(patterns)
	}
	if enabled, ok := os.LookupEnv(EnvLoggingEnabled); ok {
		out.Logger.Enabled = enabled == "true"
	}
	if paths := os.Getenv(EnvLoggingPaths); paths != "" {
		out.Logger.IncludePaths = splitEnvList(paths)
	}
	if exclude := os.Getenv(EnvLoggingExclude); exclude != "" {
		out.Logger.ExcludePaths = splitEnvList(exclude)
	}

	return out
}

func splitEnvList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
