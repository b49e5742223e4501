package services

import (
	"context"
	"encoding/json"
	"time"

	"yatube/logger"
	"yatube/models"
)

// FeedEvent - новый пост автора для одного подписчика
type FeedEvent struct {
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedNotifier доставляет события подписчикам
type FeedNotifier interface {
	Publish(ctx context.Context, event FeedEvent) error
}

func newFeedEvents(post *models.Post, followerIDs []int64) []FeedEvent {
	events := make([]FeedEvent, 0, len(followerIDs))
	for _, id := range followerIDs {
		events = append(events, FeedEvent{
			UserID:    id,
			PostID:    post.ID,
			AuthorID:  post.AuthorID,
			Content:   post.String(),
			CreatedAt: post.PubDate,
		})
	}
	return events
}

type feedPush struct {
	Event string `json:"event"`
	FeedEvent
}

// pushPayload - сообщение, которое получает клиент по websocket
func pushPayload(event FeedEvent) ([]byte, error) {
	return json.Marshal(feedPush{Event: "feed_posted", FeedEvent: event})
}

// DirectNotifier пушит события сразу в websocket, без брокера
type DirectNotifier struct {
	WS *WSConnManager
}

func NewDirectNotifier(ws *WSConnManager) *DirectNotifier {
	return &DirectNotifier{WS: ws}
}

func (n *DirectNotifier) Publish(ctx context.Context, event FeedEvent) error {
	data, err := pushPayload(event)
	if err != nil {
		return err
	}
	if sent := n.WS.Send(event.UserID, data); sent > 0 {
		logger.Ctx(ctx).Debug().Int64(logger.FieldUserID, event.UserID).Int("connections", sent).Msg("feed event pushed")
	}
	return nil
}
