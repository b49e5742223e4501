package handlers

import (
	"net/http"

	"yatube/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSFeed - websocket, в который приходят новые посты авторов из подписок
func (h *Handlers) WSFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	l := logger.Ctx(c.Request.Context())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// приветствие до регистрации: после Add в соединение пишет только WSConnManager
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"connected","message":"WebSocket connected"}`))

	h.ws.Add(userID, conn)
	defer h.ws.Remove(userID, conn)

	// входящие сообщения не обрабатываются, чтение нужно для закрытия соединения
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			l.Debug().Err(err).Msg("websocket closed")
			return
		}
	}
}
