package edgegate

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Cookie names the identity provider's browser SDK uses for session storage.
// The Authorization header always wins; cookies are a fallback for browser
// traffic that never sets one.
const (
	cookieAccessToken   = "sb-access-token"
	cookieLegacySession = "supabase.auth.token"
)

// CredentialFromRequest extracts the bearer credential from r.
//
// Resolution order:
//  1. Authorization header with a "Bearer " prefix.
//  2. The sb-access-token cookie (raw token value).
//  3. The supabase.auth.token cookie (raw token value).
//  4. Any cookie whose name contains both "sb-" and "auth": parsed as a JSON
//     session blob with an access_token field, else taken verbatim.
//
// The bool result reports whether any credential was found; verification is
// the caller's job.
func CredentialFromRequest(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}

	if header := r.Header.Get("Authorization"); header != "" {
		const prefix = "Bearer "
		if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
			return strings.TrimSpace(header[len(prefix):]), true
		}
	}

	if c, err := r.Cookie(cookieAccessToken); err == nil && c.Value != "" {
		return c.Value, true
	}
	if c, err := r.Cookie(cookieLegacySession); err == nil && c.Value != "" {
		return c.Value, true
	}

	for _, c := range r.Cookies() {
		if c.Value == "" {
			continue
		}
		name := strings.ToLower(c.Name)
		if !strings.Contains(name, "sb-") || !strings.Contains(name, "auth") {
			continue
		}
		if tok := accessTokenFromBlob(c.Value); tok != "" {
			return tok, true
		}
		return c.Value, true
	}

	return "", false
}

// accessTokenFromBlob extracts access_token from a JSON session blob. Returns
// "" when the value is not a blob or carries no token.
func accessTokenFromBlob(value string) string {
	if !strings.HasPrefix(value, "{") {
		return ""
	}
	var blob struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(value), &blob); err != nil {
		return ""
	}
	return blob.AccessToken
}
