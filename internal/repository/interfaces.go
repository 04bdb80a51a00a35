package repository

import (
	"context"

	"study-archive-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// GroupRepositoryInterface defines whole-collection persistence for the group directory.
// Every mutation is expected to be one Load immediately followed by one Save.
type GroupRepositoryInterface interface {
	// Load returns every stored record, broken ones included, in stored order.
	// A missing key yields an empty collection.
	Load(ctx context.Context) ([]models.GroupRecord, error)
	// Save replaces the stored collection with groups.
	Save(ctx context.Context, groups []models.GroupRecord) error
}

// SuggestionRepositoryInterface defines the interface for suggestion repository operations
type SuggestionRepositoryInterface interface {
	Create(ctx context.Context, suggestion *models.Suggestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Suggestion, error)
	List(ctx context.Context, limit int) ([]models.Suggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
