package handlers

import (
	"net/http"

	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// DuplicateResponse names the record a rejected submission collides with
type DuplicateResponse struct {
	Error         string `json:"error" example:"a group with this link already exists: Daily Daf"`
	ExistingGroup string `json:"existing_group" example:"Daily Daf"`
}

// PartialFailureResponse is returned when approval created the group but left the suggestion behind
type PartialFailureResponse struct {
	Error        string      `json:"error"`
	SuggestionID string      `json:"suggestion_id"`
	Group        interface{} `json:"group,omitempty"`
}

// respondError maps a domain error to a status code and body
func respondError(c *gin.Context, err error) {
	if dup, ok := apperrors.AsDuplicate(err); ok {
		c.JSON(http.StatusBadRequest, DuplicateResponse{Error: dup.Error(), ExistingGroup: dup.Existing})
		return
	}

	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsStoreUnavailable(err):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "storage is unavailable, try again later"})
	default:
		logger.FromGinContext(c).WithError(err).Error("Unhandled request error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
