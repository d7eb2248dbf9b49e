package auth

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWatcherDispatchReachesEverySubscriberOnce(t *testing.T) {
	w := NewWatcher(nil, quietLogger())

	var a, b int
	w.Subscribe(func(Event) { a++ })
	w.Subscribe(func(Event) { b++ })

	w.dispatch(Event{Kind: EventSignedIn})
	w.dispatch(Event{Kind: EventTokenRefreshed})

	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestWatcherUnsubscribeIsIdempotent(t *testing.T) {
	w := NewWatcher(nil, quietLogger())

	var calls int
	sub := w.Subscribe(func(Event) { calls++ })
	other := w.Subscribe(func(Event) {})

	sub.Unsubscribe()
	sub.Unsubscribe() // second call must be harmless
	w.dispatch(Event{Kind: EventSignedOut})

	assert.Zero(t, calls)

	// The other subscription is unaffected.
	other.Unsubscribe()
}

func TestWatcherSubscriberMayUnsubscribeItself(t *testing.T) {
	w := NewWatcher(nil, quietLogger())

	var calls int
	var sub *Subscription
	sub = w.Subscribe(func(Event) {
		calls++
		sub.Unsubscribe()
	})

	w.dispatch(Event{Kind: EventSignedIn})
	w.dispatch(Event{Kind: EventSignedIn})

	assert.Equal(t, 1, calls)
}

func TestWatcherCloseDropsSubscribers(t *testing.T) {
	w := NewWatcher(nil, quietLogger())

	var calls int
	w.Subscribe(func(Event) { calls++ })

	w.Close()
	w.Close() // idempotent
	w.dispatch(Event{Kind: EventSignedIn})

	assert.Zero(t, calls)

	// Subscriptions taken after close never fire.
	w.Subscribe(func(Event) { calls++ })
	w.dispatch(Event{Kind: EventSignedIn})
	assert.Zero(t, calls)
}
