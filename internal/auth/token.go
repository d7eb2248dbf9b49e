package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/init-club/Init-Website-sub000/config"
	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type supabaseClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Role         string         `json:"role"` // usually "authenticated" / "anon"
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"` // GitHub fills user_name, full_name, avatar_url
}

// TokenVerifier turns a raw Supabase access token into a Session. It is the
// GetSession half of the identity-provider contract: a missing or
// unverifiable token is "no session", not an error the caller must branch on.
type TokenVerifier struct {
	secret   string
	issuer   string
	audience string
}

func NewTokenVerifier(cfg config.Supabase) *TokenVerifier {
	return &TokenVerifier{
		secret: cfg.JWTSecret,
		issuer: cfg.JWTIssuer,
	}
}

func (v *TokenVerifier) Verify(raw string) (*models.Session, error) {
	const op = "TokenVerifier.Verify"

	if raw == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing bearer token", nil)
	}

	claims := &supabaseClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(v.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || tok == nil || !tok.Valid {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token", err)
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token issuer", nil)
	}

	if claims.Subject == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing subject", nil)
	}

	sess := &models.Session{
		UserID:      claims.Subject,
		Email:       claims.Email,
		AccessToken: raw,
	}
	if claims.UserMetadata != nil {
		if s, ok := claims.UserMetadata["full_name"].(string); ok {
			sess.Name = s
		}
		if sess.Name == "" {
			if s, ok := claims.UserMetadata["user_name"].(string); ok {
				sess.Name = s
			}
		}
		if s, ok := claims.UserMetadata["avatar_url"].(string); ok {
			sess.AvatarURL = s
		}
	}
	return sess, nil
}
