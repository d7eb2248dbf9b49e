package auth

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

// Event is a session lifecycle notification. Tokens are never published;
// subscribers that need the live session resolve it themselves.
type Event struct {
	Kind   EventKind `json:"kind"`
	UserID string    `json:"user_id,omitempty"`
}

const eventsChannel = "auth:events"

type Handler func(Event)

// Watcher is the OnSessionChange contract: a subscription registry fed by a
// Redis pub/sub channel so every instance observes every login, logout and
// token refresh, wherever it happened.
type Watcher struct {
	rdb *redis.Client
	log *logrus.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]Handler
	closed bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(rdb *redis.Client, log *logrus.Logger) *Watcher {
	return &Watcher{
		rdb:  rdb,
		log:  log,
		subs: map[uint64]Handler{},
		done: make(chan struct{}),
	}
}

// Run consumes the Redis channel until ctx ends or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	pubsub := w.rdb.Subscribe(ctx, eventsChannel)
	defer pubsub.Close()
	defer close(w.done)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				w.log.WithError(err).Warn("auth watcher: bad event payload")
				continue
			}
			w.dispatch(evt)
		}
	}
}

// Publish announces a session lifecycle event to every instance.
func (w *Watcher) Publish(ctx context.Context, evt Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return w.rdb.Publish(ctx, eventsChannel, b).Err()
}

// Subscription is the handle returned by Subscribe. Unsubscribe is
// idempotent and must be called on every teardown path.
type Subscription struct {
	id   uint64
	w    *Watcher
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.w.mu.Lock()
		delete(s.w.subs, s.id)
		s.w.mu.Unlock()
	})
}

func (w *Watcher) Subscribe(h Handler) *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	if !w.closed {
		w.subs[id] = h
	}
	return &Subscription{id: id, w: w}
}

func (w *Watcher) dispatch(evt Event) {
	w.mu.Lock()
	handlers := make([]Handler, 0, len(w.subs))
	for _, h := range w.subs {
		handlers = append(handlers, h)
	}
	w.mu.Unlock()

	// Each subscriber sees each event exactly once; handlers run outside
	// the lock so they may unsubscribe themselves.
	for _, h := range handlers {
		h(evt)
	}
}

// Close stops the Redis loop and drops all subscribers. New checks stop
// being scheduled; anything already in flight resolves on its own.
func (w *Watcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.subs = map[uint64]Handler{}
	cancel := w.cancel
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-w.done
	}
}
