package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

func newTestRouter(hub *Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	snapshot := func(_ context.Context, electionID int64) (interface{}, error) {
		if electionID != 7 {
			return nil, apperrors.NewResourceNotFoundError("election not found")
		}
		return map[string]int64{"totalVotes": 0}, nil
	}
	router := gin.New()
	router.GET("/elections/:id/results/ws", NewHandler(hub, snapshot, zerolog.Nop()).HandleConnection)
	return router
}

func TestHandleConnection_RejectsBadRequests(t *testing.T) {
	router := newTestRouter(NewHub(zerolog.Nop()))

	tests := []struct {
		path string
		want int
	}{
		{"/elections/abc/results/ws", http.StatusBadRequest},
		{"/elections/0/results/ws", http.StatusBadRequest},
		{"/elections/9/results/ws", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleConnection_StreamsSnapshots(t *testing.T) {
	hub := runHub(t)
	server := httptest.NewServer(newTestRouter(hub))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/elections/7/results/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readMessage := func() Message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	initial := readMessage()
	assert.Equal(t, MessageTypeResults, initial.Type)
	assert.Equal(t, int64(7), initial.ElectionID)

	require.Eventually(t, func() bool { return hub.GetClientsCount(7) == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(NewMessage(MessageTypeResults, 7, map[string]int64{"totalVotes": 1}))

	update := readMessage()
	assert.Equal(t, map[string]interface{}{"totalVotes": float64(1)}, update.Data)

	conn.Close()
	require.Eventually(t, func() bool { return hub.GetClientsCount(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}
