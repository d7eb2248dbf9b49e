package gate

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

const deniedNotice = "Access denied: this area is for recognized club members."

// MembershipGate decides whether a signed-in identity may stay signed in and
// whether it must finish onboarding first.
type MembershipGate struct {
	status   StatusQuery
	revoker  SessionRevoker
	notifier Notifier
	log      *logrus.Logger
}

func NewMembershipGate(status StatusQuery, revoker SessionRevoker, notifier Notifier, log *logrus.Logger) *MembershipGate {
	return &MembershipGate{status: status, revoker: revoker, notifier: notifier, log: log}
}

// Check runs one gate evaluation. The three terminations of the status call
// are handled differently:
//
//   - transport fault: fail open, state unchanged;
//   - zero rows: hard deny — notify, revoke the session, redirect to root;
//   - a row: branch on profile_completed.
//
// Per invocation there is at most one revocation, one notice and one
// redirect target, and the deny sequence always runs to the redirect even
// if revocation itself fails.
func (g *MembershipGate) Check(ctx context.Context, sess *models.Session, currentPath string) Decision {
	if sess == nil {
		return Decision{Outcome: OutcomeRedirect, RedirectTo: RootPath}
	}

	rows, err := g.status.MyStatus(ctx, sess.UserID)
	if err != nil {
		// Infrastructure fault, not an answer. Never sign the user out
		// for a transport error.
		g.log.WithError(err).WithField("user_id", sess.UserID).
			Warn("membership check failed, keeping current state")
		return Decision{Outcome: OutcomeUnchanged}
	}

	if len(rows) == 0 {
		g.notifier.Notify(ctx, sess.UserID, deniedNotice)
		if err := g.revoker.SignOut(ctx, sess.AccessToken); err != nil {
			// The redirect still happens; a lingering token only means
			// the next check denies again.
			g.log.WithError(err).WithField("user_id", sess.UserID).
				Error("sign-out failed during membership denial")
		}
		return Decision{Outcome: OutcomeDeny, RedirectTo: RootPath, Notice: deniedNotice}
	}

	// One row is the expected shape; only the first is consulted.
	if !rows[0].ProfileCompleted {
		if currentPath == ProfileSetupPath {
			// Already onboarding; redirecting again would loop.
			return Decision{Outcome: OutcomeAllow}
		}
		return Decision{Outcome: OutcomeRedirect, RedirectTo: ProfileSetupPath}
	}

	return Decision{Outcome: OutcomeAllow}
}
