package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims is the JWT claim set issued by the identity provider
// (Supabase Auth layout).
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	Role         string         `json:"role"` // "authenticated" or "anon"
	SessionID    string         `json:"session_id"`
	IsAnonymous  bool           `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *IdentityClaims) GetUserID() string {
	return c.Subject
}

// Profile is the signed-in user as shown on the dashboard.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

// Profile builds the user's profile from the claims. Providers disagree on
// metadata keys, so the first non-empty one wins; the display name falls
// back to the email address.
func (c *IdentityClaims) Profile() Profile {
	p := Profile{
		ID:          c.Subject,
		Email:       c.Email,
		DisplayName: c.metadata("full_name", "name", "user_name"),
		AvatarURL:   c.metadata("avatar_url", "picture"),
	}
	if p.DisplayName == "" {
		p.DisplayName = c.Email
	}
	return p
}

func (c *IdentityClaims) metadata(keys ...string) string {
	for _, k := range keys {
		if s, ok := c.UserMetadata[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
