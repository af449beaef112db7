package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	edgegate "github.com/lumivoice/edgegate"
	"github.com/lumivoice/edgegate/cache"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func adminToken(t *testing.T, userID string) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{
		"sub": userID,
		"user_metadata": map[string]any{
			"role": "admin",
		},
	})
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{
		"sub": userID,
		"user_metadata": map[string]any{
			"role": "user",
		},
	})
}

// recordingInvalidator captures InvalidateAll calls for assertion after
// Gateway.Close has drained the detached goroutines.
type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *recordingInvalidator) InvalidateAll(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, userID)
	f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}
	return 3, nil
}

func (f *recordingInvalidator) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestGateway(t *testing.T, inv cache.Invalidator, sink edgegate.AuditSink) *edgegate.Gateway {
	t.Helper()

	cfg := edgegate.DefaultConfig()
	cfg.Token.Secret = []byte(testSecret)

	b := edgegate.New().WithConfig(cfg).WithMetricsEnabled(true)
	if inv != nil {
		b = b.WithInvalidator(inv)
	}
	if sink != nil {
		b = b.WithAuditSink(sink)
	}

	gw, err := b.Build()
	if err != nil {
		t.Fatalf("building gateway: %v", err)
	}
	t.Cleanup(gw.Close)
	return gw
}

func doRequest(handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}
