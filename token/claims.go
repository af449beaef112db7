package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Metadata is a nested claims map carried under user_metadata or app_metadata.
// The identity provider controls its contents; only a small set of well-known
// keys is read, through the typed accessors on [Claims].
type Metadata map[string]any

func (m Metadata) stringValue(key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func (m Metadata) boolValue(key string) bool {
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}

// Claims is the decoded payload of a verified bearer credential.
//
// The transport-level subject (RegisteredClaims.Subject) and the identity
// embedded in user_metadata can diverge: the provider mirrors its own user id
// into user_metadata.sub. [Claims.EffectiveUserID] applies the precedence rule
// and is the only identifier callers may use for cache partitioning.
type Claims struct {
	Email        string   `json:"email,omitempty"`
	UserMetadata Metadata `json:"user_metadata,omitempty"`
	AppMetadata  Metadata `json:"app_metadata,omitempty"`
	jwt.RegisteredClaims
}

// EffectiveUserID returns user_metadata.sub when present, falling back to the
// top-level subject claim.
func (c *Claims) EffectiveUserID() string {
	if c == nil {
		return ""
	}
	if sub := c.UserMetadata.stringValue("sub"); sub != "" {
		return sub
	}
	return c.Subject
}

// Role returns the caller's role, read from user_metadata first and
// app_metadata second. Empty when neither map carries one.
func (c *Claims) Role() string {
	if c == nil {
		return ""
	}
	if role := c.UserMetadata.stringValue("role"); role != "" {
		return role
	}
	return c.AppMetadata.stringValue("role")
}

// SuperAdmin reports whether either metadata map marks the caller as a
// super admin.
func (c *Claims) SuperAdmin() bool {
	if c == nil {
		return false
	}
	return c.UserMetadata.boolValue("is_super_admin") || c.AppMetadata.boolValue("is_super_admin")
}
