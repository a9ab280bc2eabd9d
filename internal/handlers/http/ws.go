package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/housielive/housie/internal/services/game"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleStream upgrades the connection and forwards the session's
// engine events until the client disconnects or the subscription ends.
func handleStream(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		// Reject unknown sessions before upgrading
		if _, err := deps.Game.GetSessionState(c.Request.Context(), &game.GetSessionStateInput{
			SessionID: sessionID,
		}); err != nil {
			respondErr(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		eventCh, cancel := deps.Hub.Subscribe(sessionID)
		defer cancel()

		if deps.Supervisor != nil {
			deps.Supervisor.EnsureRunning(c.Request.Context(), sessionID)
		}

		// Drain client frames so close and pong frames get processed
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-eventCh:
				if !ok {
					conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("http: websocket write for session %s failed: %v", sessionID, err)
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
