package gate

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/models"
)

// SessionSource resolves the current session after a lifecycle event.
// Passed in explicitly so the evaluator is testable without the identity
// provider.
type SessionSource interface {
	CurrentSession(ctx context.Context) (*models.Session, error)
}

// Evaluator is the session bootstrap: it subscribes to session-change
// events and re-runs the membership gate exactly once per event. In-flight
// checks are not cancelled when a newer event arrives; instead every check
// carries a monotonically increasing token and only the latest-issued token
// may update state, so a slow old check can never overwrite a newer answer.
type Evaluator struct {
	source SessionSource
	gate   *MembershipGate
	log    *logrus.Logger

	mu       sync.Mutex
	seq      uint64
	checking bool
	decided  bool
	current  Decision
	closed   bool

	onDecision func(Decision)

	sub *auth.Subscription
	wg  sync.WaitGroup
}

func NewEvaluator(source SessionSource, gate *MembershipGate, log *logrus.Logger) *Evaluator {
	return &Evaluator{source: source, gate: gate, log: log}
}

// OnDecision registers a callback fired for every applied decision. Must be
// set before Start.
func (e *Evaluator) OnDecision(fn func(Decision)) {
	e.onDecision = fn
}

// Start performs the initial session resolution and subscribes for the
// evaluator's remaining lifetime. The subscription is released exactly once
// in Close, on every exit path.
func (e *Evaluator) Start(ctx context.Context, w *auth.Watcher) {
	e.sub = w.Subscribe(func(auth.Event) {
		e.trigger(ctx)
	})
	e.trigger(ctx)
}

func (e *Evaluator) trigger(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.seq++
	token := e.seq
	e.checking = true
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.evaluate(ctx, token)
	}()
}

func (e *Evaluator) evaluate(ctx context.Context, token uint64) {
	sess, err := e.source.CurrentSession(ctx)
	if err != nil {
		// Unavailable auth state reads as "no session"; logged, not
		// surfaced.
		e.log.WithError(err).Warn("session resolution failed")
		sess = nil
	}

	d := e.gate.Check(ctx, sess, "")
	e.apply(token, d)
}

func (e *Evaluator) apply(token uint64, d Decision) {
	e.mu.Lock()

	// Resolved after Close: strictly a no-op.
	if e.closed {
		e.mu.Unlock()
		return
	}
	// Superseded by a newer trigger: discard, whatever the completion
	// order was.
	if token != e.seq {
		e.mu.Unlock()
		return
	}

	e.checking = false
	if d.Outcome == OutcomeUnchanged {
		e.mu.Unlock()
		return
	}
	e.decided = true
	e.current = d
	fn := e.onDecision
	e.mu.Unlock()

	if fn != nil {
		fn(d)
	}
}

// Current returns the latest applied decision, if any.
func (e *Evaluator) Current() (Decision, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.decided
}

// Checking reports whether the latest-issued check is still in flight.
func (e *Evaluator) Checking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checking
}

// Close unsubscribes and freezes state. Checks already in flight resolve on
// their own and are discarded.
func (e *Evaluator) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	if e.sub != nil {
		e.sub.Unsubscribe()
	}
}

// Wait blocks until all in-flight checks have resolved. Test hook.
func (e *Evaluator) Wait() { e.wg.Wait() }
