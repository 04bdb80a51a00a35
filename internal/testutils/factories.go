package testutils

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"study-archive-backend/internal/database/models"

	"github.com/google/uuid"
)

var factorySeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&factorySeq, 1)
}

// GroupFactory provides methods to create test GroupRecord data
type GroupFactory struct{}

// NewGroupFactory creates a new GroupFactory
func NewGroupFactory() *GroupFactory {
	return &GroupFactory{}
}

// Create creates an approved test GroupRecord with unique name, link and id
func (f *GroupFactory) Create() models.GroupRecord {
	n := nextSeq()
	return models.GroupRecord{
		ID:          strconv.FormatInt(time.Now().UnixMilli()+n, 10),
		Name:        fmt.Sprintf("Study Group %d", n),
		Link:        fmt.Sprintf("https://chat.whatsapp.com/INVITE%d", n),
		Platform:    "WhatsApp",
		Description: "A test study group",
		Language:    "English",
		Status:      models.GroupStatusApproved,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithName creates a test GroupRecord with a custom name
func (f *GroupFactory) WithName(name string) models.GroupRecord {
	g := f.Create()
	g.Name = name
	return g
}

// WithLink creates a test GroupRecord with a custom link
func (f *GroupFactory) WithLink(link string) models.GroupRecord {
	g := f.Create()
	g.Link = link
	return g
}

// Broken creates a test GroupRecord already marked broken
func (f *GroupFactory) Broken() models.GroupRecord {
	g := f.Create()
	brokenAt := time.Now().UTC()
	g.Status = models.GroupStatusBroken
	g.BrokenAt = &brokenAt
	return g
}

// SuggestionFactory provides methods to create test Suggestion data
type SuggestionFactory struct{}

// NewSuggestionFactory creates a new SuggestionFactory
func NewSuggestionFactory() *SuggestionFactory {
	return &SuggestionFactory{}
}

// Create creates a pending test Suggestion with default values
func (f *SuggestionFactory) Create() *models.Suggestion {
	n := nextSeq()
	return &models.Suggestion{
		ID:               uuid.New(),
		Name:             fmt.Sprintf("Suggested Group %d", n),
		Platform:         "Telegram",
		Link:             fmt.Sprintf("https://t.me/suggested%d", n),
		Description:      "A suggested study group",
		Language:         "Hebrew",
		SubmittedBy:      "reader@example.com",
		AdminContact:     "admin@example.com",
		AdminContactType: string(models.ContactTypeEmail),
		Status:           models.SuggestionStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

// WithCreatedAt creates a test Suggestion with a custom creation time
func (f *SuggestionFactory) WithCreatedAt(t time.Time) *models.Suggestion {
	s := f.Create()
	s.CreatedAt = t
	return s
}

// FactorySet provides access to all factories
type FactorySet struct {
	Group      *GroupFactory
	Suggestion *SuggestionFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Group:      NewGroupFactory(),
		Suggestion: NewSuggestionFactory(),
	}
}
