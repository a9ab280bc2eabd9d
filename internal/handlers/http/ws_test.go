package httpapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/housielive/housie/internal/models"
	"github.com/housielive/housie/internal/services/events"
	"github.com/housielive/housie/internal/services/game"
	gameMocks "github.com/housielive/housie/internal/services/game/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStreamDeliversSessionEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockGame := gameMocks.NewMockService(mockCtrl)
	mockGame.EXPECT().
		GetSessionState(gomock.Any(), &game.GetSessionStateInput{SessionID: "session-1"}).
		Return(&game.GetSessionStateOutput{Status: models.SessionStatusLive}, nil).
		AnyTimes()

	hub := events.NewHub(nil)
	router := NewRouter(Deps{
		Game: mockGame,
		Hub:  hub,
	})

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := strings.Replace(server.URL, "http", "ws", 1) + "/sessions/session-1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The subscription registers during the upgrade handshake, so keep
	// publishing until the handler picks one up.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.Publish(context.Background(), events.Event{
					Type:      events.TypeNumberAnnounced,
					SessionID: "session-1",
					NumberAnnounced: &events.NumberAnnouncedPayload{
						Number:    42,
						Announced: []int{42},
						Remaining: 89,
					},
				})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received events.Event
	require.NoError(t, conn.ReadJSON(&received))
	require.Equal(t, events.TypeNumberAnnounced, received.Type)
	require.NotNil(t, received.NumberAnnounced)
	require.Equal(t, 42, received.NumberAnnounced.Number)
}

func TestStreamRejectsUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockGame := gameMocks.NewMockService(mockCtrl)
	mockGame.EXPECT().
		GetSessionState(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrSessionNotFound)

	router := NewRouter(Deps{
		Game: mockGame,
		Hub:  events.NewHub(nil),
	})

	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := strings.Replace(server.URL, "http", "ws", 1) + "/sessions/missing/stream"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.Equal(t, 404, resp.StatusCode)
}
