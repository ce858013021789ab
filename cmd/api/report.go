package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toilet-finder/internal/report"
	"toilet-finder/internal/session"
)

// NotesInput is the free-text notes field of the report dialog
type NotesInput struct {
	Notes string `json:"notes" example:"Down the stairs past the cafe"`
}

// handleReportOpen godoc
// @Summary Open the report dialog
// @Tags report
// @Produce json
// @Success 200 {object} session.Frame
// @Router /report/open [post]
func (app *App) handleReportOpen(c *gin.Context) {
	app.update(c, "open report", func(st *session.State) error {
		st.Form.Open()
		return nil
	})
}

// handleToggleCategory godoc
// @Summary Toggle a report category
// @Tags report
// @Produce json
// @Param category path string true "Category" Enums(accessible, gender_neutral)
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /report/categories/{category}/toggle [post]
func (app *App) handleToggleCategory(c *gin.Context) {
	category, err := report.ParseCategory(c.Param("category"))
	if err != nil {
		badRequest(c, err)
		return
	}
	app.update(c, "toggle category", func(st *session.State) error {
		return st.Form.ToggleCategory(category)
	})
}

// handleSetNotes godoc
// @Summary Set the report notes
// @Tags report
// @Accept json
// @Produce json
// @Param notes body NotesInput true "Notes"
// @Success 200 {object} session.Frame
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /report/notes [put]
func (app *App) handleSetNotes(c *gin.Context) {
	var input NotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	app.update(c, "set notes", func(st *session.State) error {
		return st.Form.SetNotes(input.Notes)
	})
}

// handleSubmitReport godoc
// @Summary Submit the report
// @Description Submit the draft. Without a category the dialog stays open and shows a helper message.
// @Tags report
// @Produce json
// @Success 201 {object} report.Report
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /report/submit [post]
func (app *App) handleSubmitReport(c *gin.Context) {
	ctx := c.Request.Context()

	var submitted report.Report
	err := app.session.Update(ctx, func(st *session.State) error {
		var err error
		submitted, err = st.Form.Submit(ctx)
		return err
	})
	if err != nil {
		app.writeError(c, "submit report", err)
		return
	}
	c.JSON(http.StatusCreated, submitted)
}

// handleCancelReport godoc
// @Summary Cancel the report dialog
// @Description Close the dialog and discard the draft
// @Tags report
// @Produce json
// @Success 200 {object} session.Frame
// @Failure 409 {object} ErrorResponse
// @Router /report/cancel [post]
func (app *App) handleCancelReport(c *gin.Context) {
	app.update(c, "cancel report", func(st *session.State) error {
		return st.Form.Cancel()
	})
}
