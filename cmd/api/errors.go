package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toilet-finder/internal/eventloop"
	"toilet-finder/internal/mapsurface"
	"toilet-finder/internal/report"
	"toilet-finder/internal/search"
	"toilet-finder/internal/session"
	"toilet-finder/internal/spatial"
	"toilet-finder/internal/types"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"map is not ready"`
}

// statusFor maps a business error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidLatitude),
		errors.Is(err, types.ErrInvalidLongitude),
		errors.Is(err, mapsurface.ErrInvalidZoom),
		errors.Is(err, report.ErrUnknownCategory),
		errors.Is(err, spatial.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, mapsurface.ErrMarkerNotFound),
		errors.Is(err, search.ErrUnknownSuggestion):
		return http.StatusNotFound
	case errors.Is(err, mapsurface.ErrMapNotReady),
		errors.Is(err, report.ErrFormClosed):
		return http.StatusConflict
	case errors.Is(err, report.ErrNoCategorySelected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mapsurface.ErrMapLoadFailed),
		errors.Is(err, eventloop.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with err, hiding internal failures from the client
func (app *App) writeError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		app.logger.Error("request failed", "operation", op, "error", err)
		c.JSON(status, ErrorResponse{Error: "failed to " + op})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// update applies fn to the session and responds with the resulting frame
func (app *App) update(c *gin.Context, op string, fn func(st *session.State) error) {
	if err := app.session.Update(c.Request.Context(), fn); err != nil {
		app.writeError(c, op, err)
		return
	}
	app.respondFrame(c, op)
}

func (app *App) respondFrame(c *gin.Context, op string) {
	frame, err := app.session.Frame(c.Request.Context())
	if err != nil {
		app.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, frame)
}
