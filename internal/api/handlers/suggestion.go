package handlers

import (
	"net/http"

	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuggestionHandler handles HTTP requests for the suggestion workflow
type SuggestionHandler struct {
	service service.SuggestionServiceInterface
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(service service.SuggestionServiceInterface) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// SubmitSuggestion queues a public suggestion for moderation
// @Summary Suggest a group
// @Description Submit a study group for moderator review
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestion body service.SubmitSuggestionRequest true "Suggested group"
// @Success 201 {object} models.Suggestion "Pending suggestion"
// @Failure 400 {object} DuplicateResponse "Invalid input or link already listed"
// @Failure 429 {object} ErrorResponse "Too many submissions"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /suggestions [post]
func (h *SuggestionHandler) SubmitSuggestion(c *gin.Context) {
	var req service.SubmitSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	suggestion, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

// ListSuggestions returns pending suggestions, newest first
// @Summary List suggestions
// @Tags admin
// @Produce json
// @Success 200 {array} models.Suggestion "Pending suggestions"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/suggestions [get]
func (h *SuggestionHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// ApproveSuggestion promotes a suggestion into the directory
// @Summary Approve a suggestion
// @Description Copy the suggestion into the directory as an approved group, then delete it
// @Tags admin
// @Produce json
// @Param id path string true "Suggestion ID (UUID)"
// @Success 200 {object} models.GroupRecord "Created group"
// @Failure 400 {object} ErrorResponse "Invalid suggestion ID"
// @Failure 404 {object} ErrorResponse "Suggestion not found"
// @Failure 500 {object} PartialFailureResponse "Group created but suggestion not removed"
// @Security BearerAuth
// @Router /admin/suggestions/{id}/approve [post]
func (h *SuggestionHandler) ApproveSuggestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid suggestion ID"})
		return
	}

	group, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		if pf, ok := apperrors.AsPartialFailure(err); ok {
			c.JSON(http.StatusInternalServerError, PartialFailureResponse{
				Error:        pf.Error(),
				SuggestionID: pf.SuggestionID,
				Group:        group,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// RejectSuggestion deletes a suggestion
// @Summary Reject a suggestion
// @Description Delete a suggestion. Rejecting an unknown ID succeeds.
// @Tags admin
// @Param id path string true "Suggestion ID (UUID)"
// @Success 204 "Rejected"
// @Failure 400 {object} ErrorResponse "Invalid suggestion ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/suggestions/{id} [delete]
func (h *SuggestionHandler) RejectSuggestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid suggestion ID"})
		return
	}

	if err := h.service.Reject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
