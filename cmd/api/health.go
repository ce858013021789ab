package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "toilet-finder"

// PingResponse reports that the API process is up. It says nothing about the
// map session; GET /map/frame carries the map load status.
type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Service string `json:"service" example:"toilet-finder"`
}

// handlePing godoc
// @Summary Ping health check
// @Description Liveness probe for the toilet finder API process
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong", Service: serviceName})
}
