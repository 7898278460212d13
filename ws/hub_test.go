package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialTestConn mở một cặp connection thật qua httptest, trả về phía server
// (đã upgrade) và phía client.
func dialTestConn(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error("upgrade:", err)
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-connCh:
	case <-time.After(2 * time.Second):
		t.Fatal("không nhận được connection phía server")
	}
	return server, client
}

func TestHubNotifyUserDelivers(t *testing.T) {
	hub := NewHub()
	server, client := dialTestConn(t)

	hub.RegisterUser("u1", server)
	defer hub.UnregisterUser("u1", server)

	hub.NotifyUser("u1", map[string]string{"type": "note_created"})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "note_created")
}

func TestHubNotifyUnknownUserNoop(t *testing.T) {
	hub := NewHub()
	hub.NotifyUser("ghost", map[string]string{"type": "note_created"})
	assert.Equal(t, 0, hub.GetStats()["connections"])
}

func TestHubUnregisterImmediatelyAfterRegister(t *testing.T) {
	// Unregister ngay sau Register không được làm write pump panic,
	// kể cả khi pump chưa kịp chạy lần nào.
	hub := NewHub()

	for i := 0; i < 10; i++ {
		server, client := dialTestConn(t)
		hub.RegisterUser("u1", server)
		hub.UnregisterUser("u1", server)

		// Pump thoát sạch và đóng connection phía server
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, err := client.ReadMessage()
		require.Error(t, err)
	}

	stats := hub.GetStats()
	assert.Equal(t, 0, stats["users"])
	assert.Equal(t, 0, stats["connections"])
}

func TestHubStatsCountMultipleTabs(t *testing.T) {
	hub := NewHub()

	s1, _ := dialTestConn(t)
	s2, _ := dialTestConn(t)
	hub.RegisterUser("u1", s1)
	hub.RegisterUser("u1", s2)
	defer hub.UnregisterUser("u1", s1)
	defer hub.UnregisterUser("u1", s2)

	stats := hub.GetStats()
	assert.Equal(t, 1, stats["users"])
	assert.Equal(t, 2, stats["connections"])
}
