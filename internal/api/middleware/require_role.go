package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/gate"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

// RequireReviewer runs the role gate on admin route entry. Every failure
// mode — no session, no record, plain member, lookup error — is the same
// silent redirect to root; nothing admin-shaped renders first.
func RequireReviewer(g *gate.RoleGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := g.Check(c.Request.Context(), Session(c))
		if d.Outcome != gate.OutcomeAllow {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:     utils.CodeForbidden,
				Message:  "forbidden",
				Redirect: gate.RootPath,
			})
			return
		}
		c.Next()
	}
}
