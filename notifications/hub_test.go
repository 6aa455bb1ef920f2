package notifications

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

func newHubServer(t *testing.T, h *Hub) *httptest.Server {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(r.URL.Query().Get("key"), conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, key string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?key=" + key
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitConnected(t *testing.T, h *Hub, key string, n int) {
	require.Eventually(t, func() bool { return h.Connected(key) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_Send(t *testing.T) {
	h := NewHub()
	srv := newHubServer(t, h)

	first := dial(t, srv, "volunteer:1")
	second := dial(t, srv, "volunteer:1")
	other := dial(t, srv, "ong:2")
	waitConnected(t, h, "volunteer:1", 2)
	waitConnected(t, h, "ong:2", 1)

	delivered := h.Send("volunteer:1", EventNewNotification, map[string]string{"title": "Candidatura aprovada"})
	assert.Equal(t, 2, delivered)

	for _, c := range []*websocket.Conn{first, second} {
		var msg map[string]interface{}
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		require.NoError(t, c.ReadJSON(&msg))
		assert.Equal(t, EventNewNotification, msg["event"])
		assert.Equal(t, "Candidatura aprovada", msg["data"].(map[string]interface{})["title"])
	}

	_ = other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var none map[string]interface{}
	assert.Error(t, other.ReadJSON(&none))
}

func TestHub_SendWithoutClients(t *testing.T) {
	h := NewHub()
	assert.Equal(t, 0, h.Send("volunteer:missing", EventNewNotification, nil))
}

func TestHub_Disconnect(t *testing.T) {
	h := NewHub()
	srv := newHubServer(t, h)

	c := dial(t, srv, "ong:3")
	waitConnected(t, h, "ong:3", 1)

	require.NoError(t, c.Close())
	waitConnected(t, h, "ong:3", 0)
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	srv := newHubServer(t, h)

	dial(t, srv, "ong:4")
	waitConnected(t, h, "ong:4", 1)

	h.Close()
	assert.Equal(t, 0, h.Connected("ong:4"))
}
