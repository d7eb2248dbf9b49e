package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type apiError struct {
	Code     utils.Code `json:"code"`
	Message  string     `json:"message"`
	Redirect string     `json:"redirect,omitempty"`
}

const sessionKey = "session"

// Session extracts the verified session from the gin context, if any.
func Session(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

// Authenticate verifies the bearer token, when present, and stores the
// resulting session. It never aborts: public routes render fine without a
// session, and the gates downstream decide what a missing one means.
func Authenticate(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		sess, err := verifier.Verify(raw)
		if err != nil {
			// A bad token reads as "no session", same as none at all.
			c.Next()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireSession aborts unauthenticated requests. Routes behind it can
// assume Session(c) is non-nil.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Session(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "sign in required",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
