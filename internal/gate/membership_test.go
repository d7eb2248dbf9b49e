package gate

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeStatus struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, userID string) ([]models.MemberStatus, error)
}

func (f *fakeStatus) MyStatus(_ context.Context, userID string) ([]models.MemberStatus, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fn(call, userID)
}

func (f *fakeStatus) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func statusRows(rows ...models.MemberStatus) *fakeStatus {
	return &fakeStatus{fn: func(int, string) ([]models.MemberStatus, error) {
		return rows, nil
	}}
}

type fakeRevoker struct {
	mu     sync.Mutex
	calls  int
	tokens []string
	err    error
}

func (f *fakeRevoker) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tokens = append(f.tokens, token)
	return f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func validSession() *models.Session {
	return &models.Session{UserID: "5f7e0c0a-0000-4000-8000-000000000001", AccessToken: "tok-abc"}
}

func TestMembershipGateDeniesWhenNoRecord(t *testing.T) {
	status := statusRows() // zero rows: valid session, no membership record
	revoker := &fakeRevoker{}
	notifier := &fakeNotifier{}
	g := NewMembershipGate(status, revoker, notifier, testLogger())

	d := g.Check(context.Background(), validSession(), "/events")

	assert.Equal(t, OutcomeDeny, d.Outcome)
	assert.Equal(t, RootPath, d.RedirectTo)
	assert.NotEmpty(t, d.Notice)

	require.Equal(t, 1, revoker.calls, "sign-out must run exactly once")
	assert.Equal(t, []string{"tok-abc"}, revoker.tokens)
	require.Len(t, notifier.msgs, 1, "denial notice must be shown exactly once")
}

func TestMembershipGateDenyCompletesWhenSignOutFails(t *testing.T) {
	status := statusRows()
	revoker := &fakeRevoker{err: errors.New("gotrue 503")}
	g := NewMembershipGate(status, revoker, &fakeNotifier{}, testLogger())

	d := g.Check(context.Background(), validSession(), "/events")

	// The redirect must not be skipped even when revocation errors.
	assert.Equal(t, OutcomeDeny, d.Outcome)
	assert.Equal(t, RootPath, d.RedirectTo)
	assert.Equal(t, 1, revoker.calls)
}

func TestMembershipGateTransportFailureFailsOpen(t *testing.T) {
	status := &fakeStatus{fn: func(int, string) ([]models.MemberStatus, error) {
		return nil, errors.New("connection refused")
	}}
	revoker := &fakeRevoker{}
	notifier := &fakeNotifier{}
	g := NewMembershipGate(status, revoker, notifier, testLogger())

	d := g.Check(context.Background(), validSession(), "/events")

	// A transport fault is not a denial: no sign-out, no notice, no
	// navigation, prior state kept.
	assert.Equal(t, OutcomeUnchanged, d.Outcome)
	assert.Empty(t, d.RedirectTo)
	assert.Zero(t, revoker.calls)
	assert.Empty(t, notifier.msgs)
}

func TestMembershipGateProfileBranches(t *testing.T) {
	tests := []struct {
		name        string
		completed   bool
		currentPath string
		outcome     Outcome
		redirectTo  string
	}{
		{"incomplete profile redirects to setup", false, "/events", OutcomeRedirect, ProfileSetupPath},
		{"incomplete profile already on setup does not loop", false, ProfileSetupPath, OutcomeAllow, ""},
		{"complete profile proceeds", true, "/events", OutcomeAllow, ""},
		{"complete profile on setup proceeds", true, ProfileSetupPath, OutcomeAllow, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := statusRows(models.MemberStatus{Role: models.RoleMember, ProfileCompleted: tt.completed})
			revoker := &fakeRevoker{}
			g := NewMembershipGate(status, revoker, &fakeNotifier{}, testLogger())

			d := g.Check(context.Background(), validSession(), tt.currentPath)

			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.redirectTo, d.RedirectTo)
			assert.Zero(t, revoker.calls, "profile branch never signs out")
		})
	}
}

func TestMembershipGateUsesFirstRowOnly(t *testing.T) {
	status := statusRows(
		models.MemberStatus{Role: models.RoleMember, ProfileCompleted: true},
		models.MemberStatus{Role: models.RoleMember, ProfileCompleted: false},
	)
	g := NewMembershipGate(status, &fakeRevoker{}, &fakeNotifier{}, testLogger())

	d := g.Check(context.Background(), validSession(), "/events")
	assert.Equal(t, OutcomeAllow, d.Outcome)
}

func TestMembershipGateIsIdempotent(t *testing.T) {
	status := statusRows(models.MemberStatus{Role: models.RoleMember, ProfileCompleted: false})
	g := NewMembershipGate(status, &fakeRevoker{}, &fakeNotifier{}, testLogger())

	sess := validSession()
	first := g.Check(context.Background(), sess, "/events")
	second := g.Check(context.Background(), sess, "/events")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, status.callCount(), "status is re-fetched, never cached")
}

func TestMembershipGateNilSessionRedirectsWithoutRemoteCall(t *testing.T) {
	status := statusRows(models.MemberStatus{Role: models.RoleMember, ProfileCompleted: true})
	g := NewMembershipGate(status, &fakeRevoker{}, &fakeNotifier{}, testLogger())

	d := g.Check(context.Background(), nil, "/events")

	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, RootPath, d.RedirectTo)
	assert.Zero(t, status.callCount())
}
