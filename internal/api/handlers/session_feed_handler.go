package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/gate"
	"github.com/init-club/Init-Website-sub000/internal/models"
)

// SessionFeedHandler is the session bootstrap seen from the client's side:
// one websocket per tab, re-running the membership gate on every session
// lifecycle event and pushing the resulting decision. The client reacts the
// way the decision says (stay, go to onboarding, or leave signed-out).
type SessionFeedHandler struct {
	watcher  *auth.Watcher
	mgate    *gate.MembershipGate
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewSessionFeedHandler(w *auth.Watcher, mg *gate.MembershipGate, log *logrus.Logger) *SessionFeedHandler {
	return &SessionFeedHandler{
		watcher: w,
		mgate:   mg,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type sessionDecisionMsg struct {
	Outcome  string `json:"outcome"` // allow|redirect|deny
	Redirect string `json:"redirect,omitempty"`
	Notice   string `json:"notice,omitempty"`
}

// pinnedSession resolves to the session the connection authenticated with.
// Status rows are still fetched fresh on every check.
type pinnedSession struct {
	sess *models.Session
}

func (p pinnedSession) CurrentSession(context.Context) (*models.Session, error) {
	return p.sess, nil
}

func (h *SessionFeedHandler) Feed(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}

	decisions := make(chan gate.Decision, 8)
	ev := gate.NewEvaluator(pinnedSession{sess: sess}, h.mgate, h.log)
	ev.OnDecision(func(d gate.Decision) {
		select {
		case decisions <- d:
		default: // slow client: the freshest decision after drain still wins
		}
	})
	ev.Start(c.Request.Context(), h.watcher)
	defer ev.Close()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-readDone:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			if err := wc.ping(); err != nil {
				return
			}
		case d := <-decisions:
			if err := wc.writeJSON(decisionMsg(d)); err != nil {
				return
			}
			if d.Outcome == gate.OutcomeDeny {
				// The session is gone; nothing more to stream.
				return
			}
		}
	}
}

func decisionMsg(d gate.Decision) sessionDecisionMsg {
	m := sessionDecisionMsg{Redirect: d.RedirectTo, Notice: d.Notice}
	switch d.Outcome {
	case gate.OutcomeDeny:
		m.Outcome = "deny"
	case gate.OutcomeRedirect:
		m.Outcome = "redirect"
	default:
		m.Outcome = "allow"
	}
	return m
}
