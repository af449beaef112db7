package edgegate

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lumivoice/edgegate/cache"
	"github.com/lumivoice/edgegate/pathmatch"
	"github.com/lumivoice/edgegate/token"
)

// Builder assembles a [Gateway]. Zero value is not usable; start with [New].
//
//	gw, err := edgegate.New().
//		WithConfig(cfg).
//		WithRedis(client).
//		WithAuditSink(sink).
//		Build()
type Builder struct {
	config      Config
	configSet   bool
	invalidator cache.Invalidator
	redisClient redis.UniversalClient
	auditSink   AuditSink
	built       bool
}

// New returns a Builder seeded with [DefaultConfig]. The token secret must be
// supplied before Build.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration. The value is deep-copied at
// Build time; later mutation of cfg has no effect on the gateway.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	b.configSet = true
	return b
}

// WithSecret sets the HMAC verification secret, keeping the rest of the
// current configuration.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.Token.Secret = secret
	return b
}

// WithRedis backs cache invalidation with a Redis client. The partition key
// namespace comes from Invalidation.RedisPrefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redisClient = client
	return b
}

// WithInvalidator sets an explicit invalidation backend. Takes precedence over
// WithRedis.
func (b *Builder) WithInvalidator(inv cache.Invalidator) *Builder {
	b.invalidator = inv
	return b
}

// WithAuditSink sets the audit event destination and enables audit dispatch.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithMetricsEnabled toggles in-process metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the verification latency histogram. Implies
// metrics enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	if enabled {
		b.config.Metrics.Enabled = true
	}
	return b
}

// Build validates the configuration and assembles the gateway. A Builder
// builds at most once.
func (b *Builder) Build() (*Gateway, error) {
	if b.built {
		return nil, errors.New("builder already used; create a new Builder")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verifier, err := token.NewVerifier(token.Config{
		Secret:        cfg.Token.Secret,
		Issuer:        cfg.Token.Issuer,
		Audience:      cfg.Token.Audience,
		Leeway:        cfg.Token.Leeway,
		RequireExpiry: cfg.Token.RequireExpiry,
		MaxFutureIAT:  cfg.Token.MaxFutureIAT,
	})
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}

	patterns, err := pathmatch.NewSet(cfg.Invalidation.Patterns...)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}

	invalidator := b.invalidator
	if invalidator == nil {
		if b.redisClient != nil {
			invalidator = cache.NewRedisInvalidator(b.redisClient, cfg.Invalidation.RedisPrefix)
		} else {
			invalidator = cache.NoOpInvalidator{}
		}
	}

	g := &Gateway{
		config:       cfg,
		verifier:     verifier,
		invalidation: patterns,
		invalidator:  invalidator,
		audit:        newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:      NewMetrics(cfg.Metrics),
	}

	b.built = true
	return g, nil
}
