package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"study-archive-backend/internal/database/models"
	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/kvstore"
)

// GroupRepository stores the group directory as a single JSON array under one key.
//
// There is no per-record update and no optimistic concurrency token: two callers
// that Load, mutate and Save concurrently race, and the later Save wins.
type GroupRepository struct {
	kv  kvstore.Store
	key string
}

// Ensure GroupRepository implements GroupRepositoryInterface
var _ GroupRepositoryInterface = (*GroupRepository)(nil)

// NewGroupRepository creates a new group repository. A nil store makes every
// operation fail with a StoreUnavailableError.
func NewGroupRepository(kv kvstore.Store, key string) *GroupRepository {
	return &GroupRepository{kv: kv, key: key}
}

// Load reads the whole collection
func (r *GroupRepository) Load(ctx context.Context) ([]models.GroupRecord, error) {
	if r.kv == nil {
		return nil, apperrors.ErrKVStoreUnavailable
	}

	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("key-value", err)
	}
	if !found || len(raw) == 0 {
		return []models.GroupRecord{}, nil
	}

	var groups []models.GroupRecord
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptCollection, err)
	}
	if groups == nil {
		groups = []models.GroupRecord{}
	}
	return groups, nil
}

// Save replaces the whole collection
func (r *GroupRepository) Save(ctx context.Context, groups []models.GroupRecord) error {
	if r.kv == nil {
		return apperrors.ErrKVStoreUnavailable
	}
	if groups == nil {
		groups = []models.GroupRecord{}
	}

	raw, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("encode groups: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return apperrors.NewStoreUnavailableError("key-value", err)
	}
	return nil
}
