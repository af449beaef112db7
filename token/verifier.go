package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned when Verify is called with an empty input.
var ErrMissingToken = errors.New("missing token")

// ErrSecretMissing is returned when no verification secret is configured.
// A verifier without a secret treats every credential as unverifiable; it
// never panics or crashes the process.
var ErrSecretMissing = errors.New("verification secret not configured")

// ErrTokenInvalid covers signature, structure, expiry, and claim failures.
var ErrTokenInvalid = errors.New("invalid token")

// Config holds the verification parameters for a [Verifier].
//
// Config instances are intended to be set during initialization and then
// treated as immutable.
type Config struct {
	// Secret is the shared HMAC-SHA256 key. An empty secret produces a
	// degraded verifier that rejects every token with [ErrSecretMissing].
	Secret []byte

	Issuer        string
	Audience      string
	Leeway        time.Duration
	RequireExpiry bool
	MaxFutureIAT  time.Duration
}

// Verifier validates bearer credentials against a symmetric secret.
//
// Verifier is a pure function of token plus configured secret: it performs no
// I/O and is safe for concurrent use.
type Verifier struct {
	config Config
}

// NewVerifier validates cfg and returns a [Verifier].
//
// An empty Secret is accepted so a misconfigured deployment degrades to
// rejecting every request instead of refusing to start; callers that prefer
// fail-fast behavior validate the secret at a higher layer.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.MaxFutureIAT == 0 {
		cfg.MaxFutureIAT = 10 * time.Minute
	}
	if cfg.MaxFutureIAT < 0 || cfg.MaxFutureIAT > 24*time.Hour {
		return nil, errors.New("invalid MaxFutureIAT configuration")
	}

	return &Verifier{config: cfg}, nil
}

// Verify checks raw against the configured secret and returns the decoded
// claims. raw must already have the "Bearer " prefix stripped; empty input is
// an [ErrMissingToken] failure rather than a verification attempt.
//
// Any signature, structure, or registered-claim failure is wrapped in
// [ErrTokenInvalid] so the boundary can collapse all of them to a single
// unauthenticated outcome without leaking which sub-check failed.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}
	if len(v.config.Secret) == 0 {
		return nil, ErrSecretMissing
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(v.config.Leeway))
	}
	if v.config.RequireExpiry {
		options = append(options, jwt.WithExpirationRequired())
	}
	if v.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		options = append(options, jwt.WithAudience(v.config.Audience))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return v.config.Secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.IssuedAt != nil && v.config.MaxFutureIAT > 0 {
		maxAllowed := time.Now().Add(v.config.MaxFutureIAT)
		if claims.IssuedAt.Time.After(maxAllowed) {
			return nil, errors.Join(ErrTokenInvalid, errors.New("token iat too far in the future"))
		}
	}
	if claims.EffectiveUserID() == "" {
		return nil, errors.Join(ErrTokenInvalid, errors.New("token carries no subject"))
	}

	return claims, nil
}
