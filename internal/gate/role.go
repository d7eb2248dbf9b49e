package gate

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

// RoleGate is the second, independent check on admin routes. It never
// reuses a membership decision: the privilege required differs and so do
// the failure semantics (everything short of admin/semi_admin is a silent
// redirect, never a sign-out, never a notice).
type RoleGate struct {
	status StatusQuery
	log    *logrus.Logger
}

func NewRoleGate(status StatusQuery, log *logrus.Logger) *RoleGate {
	return &RoleGate{status: status, log: log}
}

func (g *RoleGate) Check(ctx context.Context, sess *models.Session) Decision {
	// No session: redirect without touching the backend.
	if sess == nil {
		return Decision{Outcome: OutcomeRedirect, RedirectTo: RootPath}
	}

	rows, err := g.status.MyStatus(ctx, sess.UserID)
	if err != nil {
		g.log.WithError(err).WithField("user_id", sess.UserID).
			Warn("role check failed, redirecting")
		return Decision{Outcome: OutcomeRedirect, RedirectTo: RootPath}
	}
	if len(rows) == 0 || !rows[0].Role.CanReview() {
		return Decision{Outcome: OutcomeRedirect, RedirectTo: RootPath}
	}
	return Decision{Outcome: OutcomeAllow}
}
