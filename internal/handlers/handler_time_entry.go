package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// timeEntryHandler handles HTTP requests related to time entries.
type timeEntryHandler struct {
	entryService portssvc.TimeEntrySvcFacade
}

func newTimeEntryHandler(ts portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{entryService: ts}
}

// registerTimeEntryRoutes registers all time-entry-related routes.
func registerTimeEntryRoutes(rg *gin.RouterGroup, entryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(entryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.PUT("/:id/approve", h.approveEntry)
		entries.PUT("/:id/reject", h.rejectEntry)
	}
}

// createEntry godoc
// @Summary Log a time entry
// @Description Creates a pending time entry for the caller. Overlapping intervals on the same day are rejected.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateTimeEntryRequest true "Entry details"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Overlapping entry"
// @Security BearerAuth
// @Router /time-entries [post]
func (h *timeEntryHandler) createEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// listEntries godoc
// @Summary List time entries
// @Description Lists time entries scoped to the caller, with date, user and status filters and token pagination.
// @Tags time-entries
// @Produce json
// @Param userId query string false "Filter by recipient user"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param status query string false "pending | approved | rejected"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Security BearerAuth
// @Router /time-entries [get]
func (h *timeEntryHandler) listEntries(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTimeEntriesResponse(entries, nextToken))
}

// getEntry godoc
// @Summary Get a time entry by ID
// @Description Retrieves a time entry visible to the caller.
// @Tags time-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /time-entries/{id} [get]
func (h *timeEntryHandler) getEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateEntry godoc
// @Summary Edit a time entry
// @Description Edits a pending or rejected entry owned by the caller. Editing a rejected entry resets it to pending.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or entry approved"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Overlapping or paid entry"
// @Security BearerAuth
// @Router /time-entries/{id} [put]
func (h *timeEntryHandler) updateEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a time entry
// @Description Deletes a pending or rejected entry owned by the caller.
// @Tags time-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry approved"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already paid"
// @Security BearerAuth
// @Router /time-entries/{id} [delete]
func (h *timeEntryHandler) deleteEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// approveEntry godoc
// @Summary Approve a time entry
// @Description Transitions a pending entry to approved and notifies its owner.
// @Tags time-entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Entry not pending"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /time-entries/{id}/approve [put]
func (h *timeEntryHandler) approveEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	entry, err := h.entryService.ApproveEntry(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a time entry
// @Description Transitions a pending entry to rejected with a mandatory reason and notifies its owner.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param rejection body dto.RejectTimeEntryRequest true "Rejection reason"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Missing reason or entry not pending"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /time-entries/{id}/reject [put]
func (h *timeEntryHandler) rejectEntry(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.RejectTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.entryService.RejectEntry(c.Request.Context(), principal, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}
