package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/gate"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

// RequireMembership runs the membership gate on every request entering the
// member area. The gate's three terminations map onto HTTP as:
//
//   - transport fault: fail open, request continues;
//   - deny: 403 carrying the one denial notice and the root redirect, the
//     session already revoked;
//   - incomplete profile: 403 pointing the client at profile-setup, no
//     revocation.
func RequireMembership(g *gate.MembershipGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := g.Check(c.Request.Context(), Session(c), c.Request.URL.Path)

		switch d.Outcome {
		case gate.OutcomeAllow, gate.OutcomeUnchanged:
			c.Next()
		case gate.OutcomeDeny:
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:     utils.CodeForbidden,
				Message:  d.Notice,
				Redirect: d.RedirectTo,
			})
		default: // OutcomeRedirect
			msg := "profile setup required"
			if d.RedirectTo == gate.RootPath {
				msg = "sign in required"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:     utils.CodeForbidden,
				Message:  msg,
				Redirect: d.RedirectTo,
			})
		}
	}
}
