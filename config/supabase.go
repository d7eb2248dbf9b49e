package config

import (
	"errors"
	"os"
	"strings"
)

// Supabase holds everything needed to talk to the project's GoTrue instance
// and to verify the access tokens it mints.
type Supabase struct {
	ProjectURL string // ex: https://xyz.supabase.co
	AnonKey    string
	JWTSecret  string
	JWTIssuer  string // optional
	StateKey   string // HMAC key for the OAuth state parameter
	SiteURL    string // where GoTrue redirects back to, ex: https://initclub.org
}

func LoadSupabase() (Supabase, error) {
	s := Supabase{
		ProjectURL: strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		AnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		JWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:  os.Getenv("SUPABASE_JWT_ISSUER"),
		StateKey:   os.Getenv("OAUTH_STATE_KEY"),
		SiteURL:    strings.TrimRight(os.Getenv("SITE_URL"), "/"),
	}
	if s.ProjectURL == "" {
		return s, errors.New("SUPABASE_URL environment variable is not set")
	}
	if s.JWTSecret == "" {
		return s, errors.New("SUPABASE_JWT_SECRET environment variable is not set")
	}
	if s.StateKey == "" {
		// Falls back to the JWT secret; a dedicated key is still preferred.
		s.StateKey = s.JWTSecret
	}
	if s.SiteURL == "" {
		s.SiteURL = "http://localhost:8080"
	}
	return s, nil
}
