// Package gate holds the authorization decisions between a Supabase session
// and the club's member records: the membership gate run on every session
// change, and the stricter role gate run on admin route entry. Decision
// logic lives here and nowhere else; HTTP middleware and the session
// evaluator only translate Decisions.
package gate

import (
	"context"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

// Routes the gates redirect to.
const (
	RootPath         = "/"
	ProfileSetupPath = "/profile-setup"
)

type Outcome int

const (
	// OutcomeUnchanged means the check could not reach the backend; the
	// caller keeps whatever state it had. Never produced by a definitive
	// answer.
	OutcomeUnchanged Outcome = iota
	OutcomeAllow
	OutcomeRedirect
	// OutcomeDeny means the session was revoked; RedirectTo is always set.
	OutcomeDeny
)

type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Notice     string // user-facing denial text, only on OutcomeDeny
}

// StatusQuery is the single authorization query both gates share. Zero rows
// means "no membership record"; it is not an error. Implementations exist
// for the member_status() remote procedure and for a direct members-table
// read; the two are equivalent by contract.
type StatusQuery interface {
	MyStatus(ctx context.Context, userID string) ([]models.MemberStatus, error)
}

// SessionRevoker invalidates the session behind an access token.
type SessionRevoker interface {
	SignOut(ctx context.Context, accessToken string) error
}

// Notifier delivers the single user-facing denial notice.
type Notifier interface {
	Notify(ctx context.Context, userID, message string)
}
