package workers

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NoticeChannel carries user-facing notices (currently only membership
// denials) keyed by user id.
const NoticeChannel = "users:notices"

type Notice struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// DenialNotifier implements the membership gate's Notifier contract. The
// notice also rides the HTTP response of the request that triggered the
// denial; this channel exists so other open tabs and instances see it too.
type DenialNotifier struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewDenialNotifier(rdb *redis.Client, log *logrus.Logger) *DenialNotifier {
	return &DenialNotifier{rdb: rdb, log: log}
}

func (n *DenialNotifier) Notify(ctx context.Context, userID, message string) {
	payload, err := json.Marshal(Notice{UserID: userID, Message: message})
	if err != nil {
		n.log.WithError(err).Error("denial notifier: marshal failed")
		return
	}
	if err := n.rdb.Publish(ctx, NoticeChannel, payload).Err(); err != nil {
		n.log.WithError(err).WithField("user_id", userID).
			Warn("denial notifier: publish failed")
	}
}
