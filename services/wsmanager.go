package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSConnManager хранит открытые websocket-соединения по пользователям
type WSConnManager struct {
	mu    sync.Mutex
	users map[int64][]*websocket.Conn
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		users: make(map[int64][]*websocket.Conn),
	}
}

func (m *WSConnManager) Add(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = append(m.users[userID], conn)
}

func (m *WSConnManager) Remove(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.users[userID]
	for i, c := range conns {
		if c == conn {
			m.users[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.users[userID]) == 0 {
		delete(m.users, userID)
	}
}

// Send пишет сообщение во все соединения пользователя.
// Запись идет под общим мьютексом: websocket.Conn не допускает параллельных писателей.
func (m *WSConnManager) Send(userID int64, message []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := 0
	for _, conn := range m.users[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, message); err == nil {
			sent++
		}
	}
	return sent
}

func (m *WSConnManager) Connections(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users[userID])
}
