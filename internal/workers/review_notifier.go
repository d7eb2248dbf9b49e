package workers

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/models"
)

// ReviewChannel carries new blog submissions to connected admin review
// feeds.
const ReviewChannel = "blogs:review"

type ReviewEvent struct {
	BlogID   string `json:"blog_id"`
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
}

// ReviewNotifier publishes submission events to Redis; the admin websocket
// handler fans them out. Publishing is best effort: a lost event only means
// the queue refreshes on the next poll.
type ReviewNotifier struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewReviewNotifier(rdb *redis.Client, log *logrus.Logger) *ReviewNotifier {
	return &ReviewNotifier{rdb: rdb, log: log}
}

func (n *ReviewNotifier) SubmissionReceived(ctx context.Context, b *models.Blog) {
	evt := ReviewEvent{BlogID: b.ID, AuthorID: b.AuthorID, Title: b.Title}
	payload, err := json.Marshal(evt)
	if err != nil {
		n.log.WithError(err).Error("review notifier: marshal failed")
		return
	}
	if err := n.rdb.Publish(ctx, ReviewChannel, payload).Err(); err != nil {
		n.log.WithError(err).WithField("blog_id", b.ID).
			Warn("review notifier: publish failed")
	}
}
