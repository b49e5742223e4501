package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yatube/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestDirectNotifierPushesToWebsocket(t *testing.T) {
	ws := NewWSConnManager()
	registered := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws.Add(7, conn)
		close(registered)
		defer ws.Remove(7, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
	}
	require.Equal(t, 1, ws.Connections(7))

	n := NewDirectNotifier(ws)
	event := FeedEvent{UserID: 7, PostID: 3, AuthorID: 1, Content: "привет"}
	require.NoError(t, n.Publish(context.Background(), event))
	// событие другого пользователя сюда не попадает
	require.NoError(t, n.Publish(context.Background(), FeedEvent{UserID: 8, PostID: 4}))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Event  string `json:"event"`
		UserID int64  `json:"user_id"`
		PostID int64  `json:"post_id"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "feed_posted", got.Event)
	require.EqualValues(t, 7, got.UserID)
	require.EqualValues(t, 3, got.PostID)
}

func TestNewFeedEvents(t *testing.T) {
	post := &models.Post{ID: 5, AuthorID: 2, Text: "Очень длинный текст поста"}
	events := newFeedEvents(post, []int64{10, 11})
	require.Len(t, events, 2)
	require.EqualValues(t, 10, events[0].UserID)
	require.EqualValues(t, 11, events[1].UserID)
	require.Equal(t, post.String(), events[0].Content)
	require.Equal(t, "user.10", routingKey(events[0].UserID))
}
