package main

import (
	"github.com/gin-gonic/gin"

	"toilet-finder/internal/session"
)

// handleLocate godoc
// @Summary Center the map on the caller
// @Description Look up the caller's approximate position from their IP address and pan the map there. The lookup completes in the background; failures leave the map unchanged.
// @Tags map
// @Produce json
// @Success 200 {object} session.Frame
// @Router /locate [post]
func (app *App) handleLocate(c *gin.Context) {
	clientIP := c.ClientIP()
	ctx := c.Request.Context()
	app.update(c, "locate", func(st *session.State) error {
		st.Locator.Locate(ctx, clientIP)
		return nil
	})
}
