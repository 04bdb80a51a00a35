//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"study-archive-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// SuggestionRepositoryTestSuite tests the SuggestionRepository
type SuggestionRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *SuggestionRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *SuggestionRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewSuggestionRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *SuggestionRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *SuggestionRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *SuggestionRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new suggestion
func (suite *SuggestionRepositoryTestSuite) TestCreate() {
	s := suite.factories.Suggestion.Create()
	s.ID = uuid.Nil

	err := suite.repo.Create(suite.ctx, s)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, s.ID)
	suite.NotZero(s.CreatedAt)
}

// TestGetByID tests retrieving a suggestion by ID
func (suite *SuggestionRepositoryTestSuite) TestGetByID() {
	s := suite.factories.Suggestion.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, s))

	got, err := suite.repo.GetByID(suite.ctx, s.ID)

	suite.NoError(err)
	suite.Equal(s.ID, got.ID)
	suite.Equal(s.Name, got.Name)
	suite.Equal(s.Link, got.Link)
	suite.Equal(s.Platform, got.Platform)
	suite.Equal(s.AdminContact, got.AdminContact)
	suite.Equal(s.Status, got.Status)
}

// TestGetByIDNotFound tests retrieving a non-existent suggestion
func (suite *SuggestionRepositoryTestSuite) TestGetByIDNotFound() {
	got, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(got)
}

// TestListNewestFirst tests that suggestions are ordered by created_at descending
func (suite *SuggestionRepositoryTestSuite) TestListNewestFirst() {
	base := time.Now().Add(-time.Hour).UTC()
	oldest := suite.factories.Suggestion.WithCreatedAt(base)
	middle := suite.factories.Suggestion.WithCreatedAt(base.Add(10 * time.Minute))
	newest := suite.factories.Suggestion.WithCreatedAt(base.Add(20 * time.Minute))
	suite.Require().NoError(suite.repo.Create(suite.ctx, middle))
	suite.Require().NoError(suite.repo.Create(suite.ctx, oldest))
	suite.Require().NoError(suite.repo.Create(suite.ctx, newest))

	list, err := suite.repo.List(suite.ctx, 0)

	suite.NoError(err)
	suite.Require().Len(list, 3)
	suite.Equal(newest.ID, list[0].ID)
	suite.Equal(middle.ID, list[1].ID)
	suite.Equal(oldest.ID, list[2].ID)

	limited, err := suite.repo.List(suite.ctx, 2)
	suite.NoError(err)
	suite.Len(limited, 2)
}

// TestDelete tests deleting a suggestion, including an absent one
func (suite *SuggestionRepositoryTestSuite) TestDelete() {
	s := suite.factories.Suggestion.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, s))

	suite.NoError(suite.repo.Delete(suite.ctx, s.ID))

	_, err := suite.repo.GetByID(suite.ctx, s.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)

	// idempotent
	suite.NoError(suite.repo.Delete(suite.ctx, s.ID))
}

func TestSuggestionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionRepositoryTestSuite))
}
