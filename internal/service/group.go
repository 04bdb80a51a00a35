package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"study-archive-backend/internal/database/models"
	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/logger"
	"study-archive-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// GroupService implements the group directory on top of whole-collection storage.
// Every mutation is exactly one Load followed by exactly one Save.
type GroupService struct {
	repo      repository.GroupRepositoryInterface
	validator *validator.Validate
}

// NewGroupService creates a new group service
func NewGroupService(repo repository.GroupRepositoryInterface, validator *validator.Validate) *GroupService {
	return &GroupService{
		repo:      repo,
		validator: validator,
	}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Link             string `json:"link" validate:"required,max=2000"`
	Platform         string `json:"platform" validate:"max=100"`
	Description      string `json:"description"`
	Language         string `json:"language" validate:"max=100"`
	AdminContact     string `json:"adminContact" validate:"max=200"`
	AdminContactType string `json:"adminContactType" validate:"omitempty,oneof=email phone whatsapp telegram other"`
}

// UpdateGroupRequest is a partial update: nil fields are left untouched.
// ID and CreatedAt are accepted only when they match the stored values.
type UpdateGroupRequest struct {
	ID               *string             `json:"id,omitempty"`
	CreatedAt        *time.Time          `json:"createdAt,omitempty"`
	Name             *string             `json:"name,omitempty"`
	Link             *string             `json:"link,omitempty"`
	Platform         *string             `json:"platform,omitempty"`
	Description      *string             `json:"description,omitempty"`
	Language         *string             `json:"language,omitempty"`
	AdminContact     *string             `json:"adminContact,omitempty"`
	AdminContactType *string             `json:"adminContactType,omitempty"`
	Status           *models.GroupStatus `json:"status,omitempty"`
}

// List returns every non-broken record. It never fails: an unreachable store
// or a malformed collection is logged and reported as an empty directory.
func (s *GroupService) List(ctx context.Context) []models.GroupRecord {
	groups := s.loadOrEmpty(ctx)

	visible := make([]models.GroupRecord, 0, len(groups))
	for _, g := range groups {
		if !g.IsBroken() {
			visible = append(visible, g)
		}
	}
	return visible
}

// ListAll returns every record, broken ones included, with the same
// degradation rules as List
func (s *GroupService) ListAll(ctx context.Context) []models.GroupRecord {
	return s.loadOrEmpty(ctx)
}

// Create validates uniqueness against the stored collection and appends a new approved record
func (s *GroupService) Create(ctx context.Context, req *CreateGroupRequest) (*models.GroupRecord, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Link = strings.TrimSpace(req.Link)
	if err := s.validator.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	if !models.IsWellFormedURL(req.Link) {
		return nil, apperrors.NewValidationError("link", "must be an absolute http or https URL")
	}

	groups, err := s.repo.Load(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to load group directory for create")
		return nil, err
	}

	if err := checkDuplicates(groups, req.Name, req.Link); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	group := models.GroupRecord{
		ID:               nextGroupID(groups, now),
		Name:             req.Name,
		Link:             req.Link,
		Platform:         req.Platform,
		Description:      req.Description,
		Language:         req.Language,
		AdminContact:     req.AdminContact,
		AdminContactType: req.AdminContactType,
		Status:           models.GroupStatusApproved,
		CreatedAt:        now,
	}

	if err := s.save(ctx, append(groups, group)); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"group_id": group.ID,
		"name":     group.Name,
	}).Info("Group created")
	return &group, nil
}

// Update merges the non-nil fields of req over the stored record.
// A missing id yields NotFound and leaves the collection untouched.
func (s *GroupService) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*models.GroupRecord, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	groups, err := s.repo.Load(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to load group directory for update")
		return nil, err
	}

	idx := indexOfGroup(groups, id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("group", id)
	}

	group := &groups[idx]
	if req.ID != nil && *req.ID != group.ID {
		return nil, apperrors.NewValidationError("id", "cannot be changed")
	}
	if req.CreatedAt != nil && !req.CreatedAt.Equal(group.CreatedAt) {
		return nil, apperrors.NewValidationError("createdAt", "cannot be changed")
	}
	mergeGroup(group, req)

	if err := s.save(ctx, groups); err != nil {
		return nil, err
	}

	updated := *group
	logger.WithContext(ctx).WithField("group_id", id).Info("Group updated")
	return &updated, nil
}

// Delete removes the record with the given id. An unknown id is not an error;
// the collection is written back either way.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	groups, err := s.repo.Load(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to load group directory for delete")
		return err
	}

	kept := make([]models.GroupRecord, 0, len(groups))
	for _, g := range groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"group_id": id,
		"removed":  len(groups) - len(kept),
	}).Info("Group deleted")
	return nil
}

func (s *GroupService) loadOrEmpty(ctx context.Context) []models.GroupRecord {
	groups, err := s.repo.Load(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("Group directory unavailable, serving empty list")
		return []models.GroupRecord{}
	}
	return groups
}

func (s *GroupService) save(ctx context.Context, groups []models.GroupRecord) error {
	return saveDirectory(ctx, s.repo, groups)
}

// saveDirectory writes the collection and records failures
func saveDirectory(ctx context.Context, repo repository.GroupRepositoryInterface, groups []models.GroupRecord) error {
	if err := repo.Save(ctx, groups); err != nil {
		directoryWriteFailures.Inc()
		logger.WithContext(ctx).WithError(err).Error("Failed to save group directory")
		return err
	}
	return nil
}

// checkDuplicates rejects a candidate whose normalized name matches a non-broken
// record, or whose normalized link matches any record
func checkDuplicates(groups []models.GroupRecord, name, link string) error {
	normName := models.NormalizeName(name)
	for _, g := range groups {
		if !g.IsBroken() && models.NormalizeName(g.Name) == normName {
			return apperrors.NewDuplicateError(apperrors.DuplicateName, g.Name)
		}
	}
	if existing, ok := findByLink(groups, link); ok {
		return apperrors.NewDuplicateError(apperrors.DuplicateLink, existing.Name)
	}
	return nil
}

func findByLink(groups []models.GroupRecord, link string) (models.GroupRecord, bool) {
	normLink := models.NormalizeLink(link)
	for _, g := range groups {
		if models.NormalizeLink(g.Link) == normLink {
			return g, true
		}
	}
	return models.GroupRecord{}, false
}

// nextGroupID returns now in milliseconds, or the next value not already used as an id
func nextGroupID(groups []models.GroupRecord, now time.Time) string {
	taken := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		taken[g.ID] = struct{}{}
	}

	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}

func indexOfGroup(groups []models.GroupRecord, id string) int {
	for i := range groups {
		if groups[i].ID == id {
			return i
		}
	}
	return -1
}

func validateUpdate(req *UpdateGroupRequest) error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return apperrors.NewValidationError("name", "cannot be empty")
		}
		req.Name = &trimmed
	}
	if req.Link != nil {
		trimmed := strings.TrimSpace(*req.Link)
		if !models.IsWellFormedURL(trimmed) {
			return apperrors.NewValidationError("link", "must be an absolute http or https URL")
		}
		req.Link = &trimmed
	}
	if req.Status != nil && !req.Status.IsValid() {
		return apperrors.NewValidationError("status", "must be approved or broken")
	}
	if req.AdminContactType != nil && *req.AdminContactType != "" && !models.ContactType(*req.AdminContactType).IsValid() {
		return apperrors.NewValidationError("adminContactType", "must be one of email, phone, whatsapp, telegram, other")
	}
	return nil
}

func mergeGroup(group *models.GroupRecord, req *UpdateGroupRequest) {
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Link != nil {
		group.Link = *req.Link
	}
	if req.Platform != nil {
		group.Platform = *req.Platform
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Language != nil {
		group.Language = *req.Language
	}
	if req.AdminContact != nil {
		group.AdminContact = *req.AdminContact
	}
	if req.AdminContactType != nil {
		group.AdminContactType = *req.AdminContactType
	}
	if req.Status != nil {
		group.Status = *req.Status
	}
}
