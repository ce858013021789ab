package main

import (
	"github.com/gin-gonic/gin"

	"toilet-finder/internal/session"
)

// SearchInput is the text currently in the search box
type SearchInput struct {
	Text string `json:"text" example:"Lewisham Library"`
}

// handleSearchInput godoc
// @Summary Update the search text
// @Description Record the typed text and fetch autocomplete suggestions once the map is ready
// @Tags search
// @Accept json
// @Produce json
// @Param input body SearchInput true "Search text"
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Router /search/input [put]
func (app *App) handleSearchInput(c *gin.Context) {
	var input SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	app.update(c, "update search", func(st *session.State) error {
		st.Search.OnInputChange(input.Text)
		return nil
	})
}

// handleSuggestionSelected godoc
// @Summary Choose a suggestion
// @Description Fill the search box with the suggestion and move the map to it once resolved
// @Tags search
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} session.Frame
// @Failure 404 {object} ErrorResponse
// @Router /search/suggestions/{id}/select [post]
func (app *App) handleSuggestionSelected(c *gin.Context) {
	id := c.Param("id")
	app.update(c, "select suggestion", func(st *session.State) error {
		return st.Search.OnSuggestionSelected(id)
	})
}
