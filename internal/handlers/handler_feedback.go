package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// feedbackHandler handles feedback submission and developer review.
type feedbackHandler struct {
	feedbackService portssvc.FeedbackSvcFacade
}

func newFeedbackHandler(fs portssvc.FeedbackSvcFacade) *feedbackHandler {
	return &feedbackHandler{feedbackService: fs}
}

// registerFeedbackRoutes registers all feedback-related routes.
func registerFeedbackRoutes(rg *gin.RouterGroup, feedbackService portssvc.FeedbackSvcFacade) {
	h := newFeedbackHandler(feedbackService)

	feedback := rg.Group("/feedback")
	{
		feedback.POST("", h.submitFeedback)
		feedback.GET("", h.listFeedback)
	}
}

// submitFeedback godoc
// @Summary Submit feedback
// @Description Stores a feedback message and notifies the developers.
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body dto.SubmitFeedbackRequest true "Feedback message"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /feedback [post]
func (h *feedbackHandler) submitFeedback(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackResponse(feedback))
}

// listFeedback godoc
// @Summary List all feedback
// @Description Lists every feedback message, newest first. Developers only.
// @Tags feedback
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListFeedbackResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /feedback [get]
func (h *feedbackHandler) listFeedback(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	feedbacks, err := h.feedbackService.ListFeedback(c.Request.Context(), principal, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeedbackResponse(feedbacks))
}
