package models

// Session is the authenticated context derived from a verified Supabase
// access token. It is created and destroyed by the identity provider; this
// service only observes it, one request at a time.
type Session struct {
	UserID      string `json:"user_id"` // Supabase auth uuid ("sub" claim)
	Email       string `json:"email"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	AccessToken string `json:"-"` // never serialized
}
