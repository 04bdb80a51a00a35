package service

import (
	"context"

	"study-archive-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// GroupServiceInterface defines the interface for the group directory
type GroupServiceInterface interface {
	List(ctx context.Context) []models.GroupRecord
	ListAll(ctx context.Context) []models.GroupRecord
	Create(ctx context.Context, req *CreateGroupRequest) (*models.GroupRecord, error)
	Update(ctx context.Context, id string, req *UpdateGroupRequest) (*models.GroupRecord, error)
	Delete(ctx context.Context, id string) error
}

// SuggestionServiceInterface defines the interface for the suggestion workflow
type SuggestionServiceInterface interface {
	Submit(ctx context.Context, req *SubmitSuggestionRequest) (*models.Suggestion, error)
	List(ctx context.Context) ([]models.Suggestion, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.GroupRecord, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

// SweepServiceInterface defines the interface for the link sweep
type SweepServiceInterface interface {
	Run(ctx context.Context) (*SweepReport, error)
}

// Ensure implementations satisfy their interfaces
var (
	_ GroupServiceInterface      = (*GroupService)(nil)
	_ SuggestionServiceInterface = (*SuggestionService)(nil)
	_ SweepServiceInterface      = (*SweepService)(nil)
)
