package repository

import (
	"context"

	"study-archive-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionRepository handles database operations for suggestions
type SuggestionRepository struct {
	db *gorm.DB
}

// Ensure SuggestionRepository implements SuggestionRepositoryInterface
var _ SuggestionRepositoryInterface = (*SuggestionRepository)(nil)

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create inserts a new suggestion
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

// GetByID retrieves a suggestion by ID
func (r *SuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := r.db.WithContext(ctx).First(&suggestion, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// List retrieves suggestions, newest first. A non-positive limit returns all of them.
func (r *SuggestionRepository) List(ctx context.Context, limit int) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Delete removes a suggestion by ID. Deleting a missing suggestion is not an error.
func (r *SuggestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Suggestion{}, "id = ?", id).Error
}
