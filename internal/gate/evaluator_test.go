package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

type fakeSource struct {
	mu   sync.Mutex
	sess *models.Session
}

func (f *fakeSource) CurrentSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess, nil
}

func newTestEvaluator(status StatusQuery) *Evaluator {
	g := NewMembershipGate(status, &fakeRevoker{}, &fakeNotifier{}, testLogger())
	return NewEvaluator(&fakeSource{sess: validSession()}, g, testLogger())
}

func TestEvaluatorLatestTokenWins(t *testing.T) {
	// First check stalls until released and would resolve to a redirect;
	// the second resolves immediately to allow. Whatever the completion
	// order, the second (latest-issued) decision must stand.
	release := make(chan struct{})
	status := &fakeStatus{fn: func(call int, _ string) ([]models.MemberStatus, error) {
		if call == 1 {
			<-release
			return []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: false}}, nil
		}
		return []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: true}}, nil
	}}

	e := newTestEvaluator(status)
	defer e.Close()

	e.trigger(context.Background()) // stalls
	e.trigger(context.Background()) // resolves first

	// Wait for the second check to land.
	require.Eventually(t, func() bool {
		d, ok := e.Current()
		return ok && d.Outcome == OutcomeAllow
	}, time.Second, time.Millisecond)

	close(release)
	e.Wait()

	d, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, OutcomeAllow, d.Outcome, "stale check must not overwrite the newer decision")
	assert.False(t, e.Checking())
}

func TestEvaluatorOneCheckPerTrigger(t *testing.T) {
	status := statusRows(models.MemberStatus{Role: models.RoleMember, ProfileCompleted: true})
	e := newTestEvaluator(status)
	defer e.Close()

	for i := 0; i < 3; i++ {
		e.trigger(context.Background())
	}
	e.Wait()

	assert.Equal(t, 3, status.callCount(), "each event triggers exactly one check")
}

func TestEvaluatorCloseDuringInFlightCheck(t *testing.T) {
	release := make(chan struct{})
	status := &fakeStatus{fn: func(int, string) ([]models.MemberStatus, error) {
		<-release
		return nil, nil // would be a hard deny if it were applied
	}}

	e := newTestEvaluator(status)
	e.trigger(context.Background())
	e.Close()
	close(release)
	e.Wait() // must not panic

	_, ok := e.Current()
	assert.False(t, ok, "a check resolving after close must not record state")
}

func TestEvaluatorTransportFaultKeepsPriorDecision(t *testing.T) {
	status := &fakeStatus{fn: func(call int, _ string) ([]models.MemberStatus, error) {
		if call == 1 {
			return []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: true}}, nil
		}
		return nil, context.DeadlineExceeded
	}}

	e := newTestEvaluator(status)
	defer e.Close()

	e.trigger(context.Background())
	e.Wait()
	d, ok := e.Current()
	require.True(t, ok)
	require.Equal(t, OutcomeAllow, d.Outcome)

	e.trigger(context.Background())
	e.Wait()

	d, ok = e.Current()
	require.True(t, ok)
	assert.Equal(t, OutcomeAllow, d.Outcome, "transport fault leaves the prior decision in place")
	assert.False(t, e.Checking(), "loading flag clears even on failure")
}

func TestEvaluatorTriggerAfterCloseIsNoop(t *testing.T) {
	status := statusRows(models.MemberStatus{Role: models.RoleMember, ProfileCompleted: true})
	e := newTestEvaluator(status)
	e.Close()

	e.trigger(context.Background())
	e.Wait()

	assert.Zero(t, status.callCount())
}
