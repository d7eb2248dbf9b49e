package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/workers"
)

// ReviewFeedHandler streams new blog submissions to connected admins so the
// review queue updates without polling. The role gate has already run by
// the time the upgrade happens.
type ReviewFeedHandler struct {
	redis    *redis.Client
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewReviewFeedHandler(rdb *redis.Client, log *logrus.Logger) *ReviewFeedHandler {
	return &ReviewFeedHandler{
		redis: rdb,
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

func (h *ReviewFeedHandler) Feed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}

	pubsub := h.redis.Subscribe(c.Request.Context(), workers.ReviewChannel)
	defer pubsub.Close()

	// reader: only here to notice the client going away
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

	ch := pubsub.Channel()
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
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := wc.writeText([]byte(msg.Payload)); err != nil {
				h.log.WithError(err).Debug("review feed write failed")
				return
			}
		}
	}
}
