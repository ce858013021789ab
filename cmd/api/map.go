package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"toilet-finder/internal/mapsurface"
	"toilet-finder/internal/session"
	"toilet-finder/internal/types"
)

// ClickInput is the position of a map click
type ClickInput struct {
	Latitude  *float64 `json:"latitude" binding:"required" example:"51.4500"`
	Longitude *float64 `json:"longitude" binding:"required" example:"-0.0040"`
}

// NavigateInput is the body of a navigate request
type NavigateInput struct {
	Latitude  *float64 `json:"latitude" binding:"required" example:"51.4613"`
	Longitude *float64 `json:"longitude" binding:"required" example:"-0.0130"`
	Zoom      *int     `json:"zoom" binding:"required" example:"17"`
}

// NearbyInput defines the query parameters for the nearby markers endpoint
type NearbyInput struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	Radius    float64  `form:"radius" binding:"required,gt=0"` // meters
}

// WithinInput defines the bounding box for the markers within endpoint
type WithinInput struct {
	MinLatitude  *float64 `form:"minLatitude" binding:"required"`
	MinLongitude *float64 `form:"minLongitude" binding:"required"`
	MaxLatitude  *float64 `form:"maxLatitude" binding:"required"`
	MaxLongitude *float64 `form:"maxLongitude" binding:"required"`
}

// NearestInput defines the query parameters for the nearest markers endpoint
type NearestInput struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	Count     int      `form:"count,default=1" binding:"gte=1,lte=100"`
}

// handleGetFrame godoc
// @Summary Get the current frame
// @Description Render the map, search box and report dialog as they are now
// @Tags map
// @Produce json
// @Success 200 {object} session.Frame
// @Failure 503 {object} ErrorResponse
// @Router /map/frame [get]
func (app *App) handleGetFrame(c *gin.Context) {
	app.respondFrame(c, "render frame")
}

// handleMapClick godoc
// @Summary Log a facility
// @Description Place a marker where the map was clicked
// @Tags map
// @Accept json
// @Produce json
// @Param click body ClickInput true "Clicked position"
// @Success 201 {object} mapsurface.Marker
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /map/clicks [post]
func (app *App) handleMapClick(c *gin.Context) {
	var input ClickInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	point := types.MapPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}

	var marker mapsurface.Marker
	err := app.session.Update(c.Request.Context(), func(st *session.State) error {
		var err error
		marker, err = st.Map.OnMapClick(point)
		return err
	})
	if err != nil {
		app.writeError(c, "place marker", err)
		return
	}
	c.JSON(http.StatusCreated, marker)
}

// handleMarkerClick godoc
// @Summary Select a marker
// @Description Open the info overlay on a marker
// @Tags map
// @Produce json
// @Param id path string true "Marker ID" format(uuid)
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /map/markers/{id}/select [post]
func (app *App) handleMarkerClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	app.update(c, "select marker", func(st *session.State) error {
		return st.Map.OnMarkerClick(id)
	})
}

// handleOverlayClose godoc
// @Summary Close the info overlay
// @Tags map
// @Produce json
// @Success 200 {object} session.Frame
// @Router /map/selection [delete]
func (app *App) handleOverlayClose(c *gin.Context) {
	app.update(c, "close overlay", func(st *session.State) error {
		st.Map.OnOverlayClose()
		return nil
	})
}

// handleRemoveMarker godoc
// @Summary Remove a marker
// @Tags map
// @Produce json
// @Param id path string true "Marker ID" format(uuid)
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /map/markers/{id} [delete]
func (app *App) handleRemoveMarker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	app.update(c, "remove marker", func(st *session.State) error {
		return st.Map.RemoveMarker(id)
	})
}

// handleClearMarkers godoc
// @Summary Remove every marker
// @Tags map
// @Produce json
// @Success 200 {object} session.Frame
// @Router /map/markers [delete]
func (app *App) handleClearMarkers(c *gin.Context) {
	app.update(c, "clear markers", func(st *session.State) error {
		st.Map.ClearMarkers()
		return nil
	})
}

// handleNavigate godoc
// @Summary Move the map
// @Description Recenter the viewport on a position at the given zoom
// @Tags map
// @Accept json
// @Produce json
// @Param navigate body NavigateInput true "Target position and zoom"
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /map/navigate [post]
func (app *App) handleNavigate(c *gin.Context) {
	var input NavigateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	point := types.MapPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}
	zoom := *input.Zoom
	app.update(c, "navigate", func(st *session.State) error {
		return st.Map.NavigateTo(point, zoom)
	})
}

// handleGetMarkers godoc
// @Summary List markers as GeoJSON
// @Tags map
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /map/markers [get]
func (app *App) handleGetMarkers(c *gin.Context) {
	var fc *geojson.FeatureCollection
	err := app.session.View(c.Request.Context(), func(st *session.State) {
		fc = st.Map.MarkersGeoJSON()
	})
	if err != nil {
		app.writeError(c, "list markers", err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// handleMarkersNearby godoc
// @Summary Markers within a radius
// @Tags map
// @Produce json
// @Param latitude query number true "Latitude in decimal degrees" example(51.4496)
// @Param longitude query number true "Longitude in decimal degrees" example(-0.0042)
// @Param radius query number true "Radius in meters" example(500)
// @Success 200 {array} mapsurface.Marker
// @Failure 400 {object} ErrorResponse
// @Router /map/markers/nearby [get]
func (app *App) handleMarkersNearby(c *gin.Context) {
	var input NearbyInput
	if err := c.ShouldBindQuery(&input); err != nil {
		badRequest(c, err)
		return
	}
	center := types.MapPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}
	app.queryMarkers(c, "find nearby markers", func(st *session.State) ([]mapsurface.Marker, error) {
		return st.Map.MarkersNearby(center, input.Radius)
	})
}

// handleMarkersWithin godoc
// @Summary Markers inside a bounding box
// @Tags map
// @Produce json
// @Param minLatitude query number true "South edge"
// @Param minLongitude query number true "West edge"
// @Param maxLatitude query number true "North edge"
// @Param maxLongitude query number true "East edge"
// @Success 200 {array} mapsurface.Marker
// @Failure 400 {object} ErrorResponse
// @Router /map/markers/within [get]
func (app *App) handleMarkersWithin(c *gin.Context) {
	var input WithinInput
	if err := c.ShouldBindQuery(&input); err != nil {
		badRequest(c, err)
		return
	}
	bound := orb.Bound{
		Min: orb.Point{*input.MinLongitude, *input.MinLatitude},
		Max: orb.Point{*input.MaxLongitude, *input.MaxLatitude},
	}
	app.queryMarkers(c, "find markers in bounds", func(st *session.State) ([]mapsurface.Marker, error) {
		return st.Map.MarkersInBounds(bound)
	})
}

// handleNearestMarkers godoc
// @Summary Markers closest to a position
// @Tags map
// @Produce json
// @Param latitude query number true "Latitude in decimal degrees"
// @Param longitude query number true "Longitude in decimal degrees"
// @Param count query int false "Number of markers" default(1)
// @Success 200 {array} mapsurface.Marker
// @Failure 400 {object} ErrorResponse
// @Router /map/markers/nearest [get]
func (app *App) handleNearestMarkers(c *gin.Context) {
	var input NearestInput
	if err := c.ShouldBindQuery(&input); err != nil {
		badRequest(c, err)
		return
	}
	point := types.MapPoint{Latitude: *input.Latitude, Longitude: *input.Longitude}
	app.queryMarkers(c, "find nearest markers", func(st *session.State) ([]mapsurface.Marker, error) {
		return st.Map.NearestMarkers(point, input.Count)
	})
}

func (app *App) queryMarkers(c *gin.Context, op string, fn func(st *session.State) ([]mapsurface.Marker, error)) {
	var (
		markers []mapsurface.Marker
		qErr    error
	)
	err := app.session.View(c.Request.Context(), func(st *session.State) {
		markers, qErr = fn(st)
	})
	if err == nil {
		err = qErr
	}
	if err != nil {
		app.writeError(c, op, err)
		return
	}
	if markers == nil {
		markers = []mapsurface.Marker{}
	}
	c.JSON(http.StatusOK, markers)
}
