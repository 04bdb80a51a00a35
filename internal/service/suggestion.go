package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"study-archive-backend/internal/database/models"
	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/logger"
	"study-archive-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionService handles the moderation queue of user-submitted groups
type SuggestionService struct {
	repo      repository.SuggestionRepositoryInterface
	groupRepo repository.GroupRepositoryInterface
	validator *validator.Validate
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(repo repository.SuggestionRepositoryInterface, groupRepo repository.GroupRepositoryInterface, validator *validator.Validate) *SuggestionService {
	return &SuggestionService{
		repo:      repo,
		groupRepo: groupRepo,
		validator: validator,
	}
}

// SubmitSuggestionRequest represents a public suggestion submission
type SubmitSuggestionRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Platform         string `json:"platform" validate:"required,max=100"`
	Link             string `json:"link" validate:"required,max=2000"`
	Description      string `json:"description"`
	Language         string `json:"language" validate:"max=100"`
	SubmittedBy      string `json:"submitted_by" validate:"max=200"`
	AdminContact     string `json:"admin_contact" validate:"max=200"`
	AdminContactType string `json:"admin_contact_type" validate:"omitempty,oneof=email phone whatsapp telegram other"`
}

func (r *SubmitSuggestionRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Platform = strings.TrimSpace(r.Platform)
	r.Link = strings.TrimSpace(r.Link)
	r.Description = strings.TrimSpace(r.Description)
	r.Language = strings.TrimSpace(r.Language)
	r.SubmittedBy = strings.TrimSpace(r.SubmittedBy)
	r.AdminContact = strings.TrimSpace(r.AdminContact)
	r.AdminContactType = strings.TrimSpace(r.AdminContactType)
}

// Submit validates and queues a suggestion. A link already present in the
// directory, broken records included, is rejected as a duplicate.
func (s *SuggestionService) Submit(ctx context.Context, req *SubmitSuggestionRequest) (*models.Suggestion, error) {
	req.trim()
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	if !models.IsWellFormedURL(req.Link) {
		return nil, apperrors.NewValidationError("link", "must be an absolute http or https URL")
	}

	groups, err := s.groupRepo.Load(ctx)
	if err != nil {
		// the cross-check is a read and degrades like one
		logger.WithContext(ctx).WithError(err).Warn("Group directory unavailable, skipping duplicate link check")
		groups = nil
	}
	if existing, ok := findByLink(groups, req.Link); ok {
		suggestionsTotal.WithLabelValues("duplicate").Inc()
		return nil, apperrors.NewDuplicateError(apperrors.DuplicateLink, existing.Name)
	}

	suggestion := &models.Suggestion{
		Name:             req.Name,
		Platform:         req.Platform,
		Link:             req.Link,
		Description:      req.Description,
		Language:         req.Language,
		SubmittedBy:      req.SubmittedBy,
		AdminContact:     req.AdminContact,
		AdminContactType: req.AdminContactType,
		Status:           models.SuggestionStatusPending,
	}
	if err := s.repo.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	suggestionsTotal.WithLabelValues("submitted").Inc()
	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"suggestion_id": suggestion.ID.String(),
		"name":          suggestion.Name,
	}).Info("Suggestion submitted")
	return suggestion, nil
}

// List returns every pending suggestion, newest first
func (s *SuggestionService) List(ctx context.Context) ([]models.Suggestion, error) {
	suggestions, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// Approve copies the suggestion into the directory and then deletes it.
//
// The two stores are not updated atomically. When the directory write succeeds
// and the delete fails, the new record is returned together with a
// PartialFailureError naming the suggestion left behind; the directory write
// is not rolled back. The directory's duplicate checks are not repeated here.
func (s *SuggestionService) Approve(ctx context.Context, id uuid.UUID) (*models.GroupRecord, error) {
	suggestion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("suggestion", id.String())
		}
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	groups, err := s.groupRepo.Load(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to load group directory for approval")
		return nil, err
	}

	now := time.Now().UTC()
	group := models.GroupRecord{
		ID:               nextGroupID(groups, now),
		Name:             suggestion.Name,
		Link:             suggestion.Link,
		Platform:         suggestion.Platform,
		Description:      suggestion.Description,
		Language:         suggestion.Language,
		AdminContact:     suggestion.AdminContact,
		AdminContactType: suggestion.AdminContactType,
		Status:           models.GroupStatusApproved,
		CreatedAt:        now,
	}
	if err := saveDirectory(ctx, s.groupRepo, append(groups, group)); err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"suggestion_id": id.String(),
		"group_id":      group.ID,
	})
	if err := s.repo.Delete(ctx, id); err != nil {
		suggestionsTotal.WithLabelValues("partial_failure").Inc()
		log.WithError(err).Error("Group created but suggestion could not be removed")
		return &group, apperrors.NewPartialFailureError("approve", id.String(), err)
	}

	suggestionsTotal.WithLabelValues("approved").Inc()
	log.Info("Suggestion approved")
	return &group, nil
}

// Reject deletes the suggestion. Rejecting a missing suggestion succeeds.
func (s *SuggestionService) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	suggestionsTotal.WithLabelValues("rejected").Inc()
	logger.WithContext(ctx).WithField("suggestion_id", id.String()).Info("Suggestion rejected")
	return nil
}
