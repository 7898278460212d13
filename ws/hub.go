package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub giữ connection theo từng userID. Một user có thể mở nhiều tab.
type Hub struct {
	Users map[string]map[*websocket.Conn]*Client
	Mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Users: make(map[string]map[*websocket.Conn]*Client),
	}
}

func (h *Hub) RegisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Users[userID]; !ok {
		h.Users[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Users[userID][conn] = client

	go h.writePump(client)
}

func (h *Hub) UnregisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Users[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Users, userID)
		}
	}
}

// NotifyUser gửi event JSON tới mọi connection của user. Connection đầy
// buffer thì bỏ qua, không block pipeline.
func (h *Hub) NotifyUser(userID string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Users[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetStats trả số liệu cho health check
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	conns := 0
	for _, clients := range h.Users {
		conns += len(clients)
	}
	return map[string]int{
		"users":       len(h.Users),
		"connections": conns,
	}
}

// writePump nhận client trực tiếp thay vì tra lại map: Unregister có thể
// xoá entry trước khi goroutine này kịp chạy.
func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
