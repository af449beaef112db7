package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestVerifier(t *testing.T, secret string) *Verifier {
	t.Helper()

	v, err := NewVerifier(Config{
		Secret: []byte(secret),
		Leeway: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	return v
}

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return raw
}

func TestVerifyResolvesNestedEffectiveUserID(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{
		"sub": "u1",
		"user_metadata": map[string]any{
			"sub": "real-u1",
		},
	})

	claims, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got := claims.EffectiveUserID(); got != "real-u1" {
		t.Fatalf("EffectiveUserID = %q, want %q", got, "real-u1")
	}
	if claims.Subject != "u1" {
		t.Fatalf("Subject = %q, want %q", claims.Subject, "u1")
	}
}

func TestVerifyFallsBackToTopLevelSubject(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{"sub": "u1"})

	claims, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got := claims.EffectiveUserID(); got != "u1" {
		t.Fatalf("EffectiveUserID = %q, want %q", got, "u1")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	v := newTestVerifier(t, "right-key")

	raw := signHS256(t, "wrong-key", jwt.MapClaims{"sub": "u1"})

	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyEmptyInputIsMissingToken(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	if _, err := v.Verify(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("Verify = %v, want ErrMissingToken", err)
	}
}

func TestVerifyWithoutSecretRejectsEverything(t *testing.T) {
	v, err := NewVerifier(Config{})
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	raw := signHS256(t, "anything", jwt.MapClaims{"sub": "u1"})
	if _, err := v.Verify(raw); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("Verify = %v, want ErrSecretMissing", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	for _, raw := range []string{"not.a.jwt", "garbage", "a.b"} {
		if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q) = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("s3cr3t"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsFutureIssuedAt(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{
		"sub": "u1",
		"iat": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsTokenWithoutSubject(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{"email": "a@b.c"})

	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyEnforcesIssuerWhenConfigured(t *testing.T) {
	v, err := NewVerifier(Config{
		Secret: []byte("s3cr3t"),
		Issuer: "https://auth.example.com",
	})
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{"sub": "u1", "iss": "someone-else"})
	if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}

	raw = signHS256(t, "s3cr3t", jwt.MapClaims{"sub": "u1", "iss": "https://auth.example.com"})
	if _, err := v.Verify(raw); err != nil {
		t.Fatalf("Verify failed for matching issuer: %v", err)
	}
}

func TestClaimsRoleAndSuperAdminPrecedence(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{
		"sub":           "u1",
		"app_metadata":  map[string]any{"role": "admin", "is_super_admin": false},
		"user_metadata": map[string]any{"role": "member", "is_super_admin": true},
	})

	claims, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got := claims.Role(); got != "member" {
		t.Fatalf("Role = %q, want user_metadata to win with %q", got, "member")
	}
	if !claims.SuperAdmin() {
		t.Fatal("SuperAdmin = false, want true")
	}
}

func TestClaimsRoleFallsBackToAppMetadata(t *testing.T) {
	v := newTestVerifier(t, "s3cr3t")

	raw := signHS256(t, "s3cr3t", jwt.MapClaims{
		"sub":          "u1",
		"app_metadata": map[string]any{"role": "admin"},
	})

	claims, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got := claims.Role(); got != "admin" {
		t.Fatalf("Role = %q, want %q", got, "admin")
	}
}

func TestNewVerifierRejectsBadLeeway(t *testing.T) {
	if _, err := NewVerifier(Config{Secret: []byte("k"), Leeway: -time.Second}); err == nil {
		t.Fatal("NewVerifier accepted negative leeway")
	}
	if _, err := NewVerifier(Config{Secret: []byte("k"), Leeway: 3 * time.Minute}); err == nil {
		t.Fatal("NewVerifier accepted oversized leeway")
	}
}
