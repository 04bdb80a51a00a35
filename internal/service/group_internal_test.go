package service

import (
	"strconv"
	"testing"
	"time"

	"study-archive-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
)

func TestNextGroupIDUsesMilliseconds(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, strconv.FormatInt(now.UnixMilli(), 10), nextGroupID(nil, now))
}

func TestNextGroupIDSkipsTakenValues(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ms := now.UnixMilli()
	groups := []models.GroupRecord{
		{ID: strconv.FormatInt(ms, 10)},
		{ID: strconv.FormatInt(ms+1, 10)},
	}

	assert.Equal(t, strconv.FormatInt(ms+2, 10), nextGroupID(groups, now))
}

func TestCheckDuplicatesPrefersNameConflict(t *testing.T) {
	groups := []models.GroupRecord{
		{ID: "1", Name: "Daily Daf", Link: "https://t.me/a", Status: models.GroupStatusApproved},
	}

	err := checkDuplicates(groups, "daily daf", "https://t.me/A")
	assert.EqualError(t, err, "a group with this name already exists: Daily Daf")
}
