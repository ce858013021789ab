package main

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const frameWriteTimeout = 10 * time.Second

// handleFrameStream godoc
// @Summary Stream frames
// @Description Upgrade to a websocket that receives the current frame and every frame after it. Slow readers skip to the latest frame.
// @Tags map
// @Success 101 {string} string "Switching Protocols"
// @Router /map/ws [get]
func (app *App) handleFrameStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     app.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		app.logger.Warn("failed to upgrade frame stream", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	frames, unsubscribe := app.session.Subscribe()
	defer unsubscribe()

	// Clients never send anything; reading detects the disconnect
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					app.logger.Debug("frame stream closed", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case frame, ok := <-frames:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session stopped"))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(frameWriteTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				app.logger.Debug("failed to write frame", "error", err)
				return
			}
		}
	}
}

// checkOrigin accepts same-origin requests and the configured CORS origins
func (app *App) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(app.cfg.Server.AllowedOrigins, origin) ||
		slices.Contains(app.cfg.Server.AllowedOrigins, "*")
}
