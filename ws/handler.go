package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/0607rj/NoteForge-AI/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // chỉ để phát triển, nên giới hạn ở production
	},
}

func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("Lỗi JSON marshal:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("Lỗi gửi message:", err)
	}
}

// HandleUserWebSocket: kênh realtime riêng của user, nhận event note_created
func HandleUserWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu token"})
			return
		}
		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
			return
		}

		userID := claims.UserID
		log.Printf("User WS connected: userID=%s\n", userID)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade thất bại:", err)
			return
		}
		hub.RegisterUser(userID, conn)
		defer hub.UnregisterUser(userID, conn)

		sendJSON(conn, gin.H{"type": "connected", "message": "Connected to user WebSocket"})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		log.Printf("User WS disconnected: userID=%s\n", userID)
		conn.Close()
	}
}
