package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-archive-backend/internal/database/models"
	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/mocks"
	"study-archive-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// SuggestionServiceTestSuite defines the test suite for SuggestionService
type SuggestionServiceTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockRepo          *mocks.MockSuggestionRepositoryInterface
	mockGroupRepo     *mocks.MockGroupRepositoryInterface
	suggestionService *service.SuggestionService
	ctx               context.Context
}

// SetupTest sets up the test suite
func (suite *SuggestionServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockSuggestionRepositoryInterface(suite.ctrl)
	suite.mockGroupRepo = mocks.NewMockGroupRepositoryInterface(suite.ctrl)
	suite.suggestionService = service.NewSuggestionService(suite.mockRepo, suite.mockGroupRepo, service.NewValidator())
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *SuggestionServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *SuggestionServiceTestSuite) validRequest() *service.SubmitSuggestionRequest {
	return &service.SubmitSuggestionRequest{
		Name:     "Daily Daf",
		Platform: "WhatsApp",
		Link:     "https://chat.whatsapp.com/ABC123",
	}
}

func (suite *SuggestionServiceTestSuite) pending() *models.Suggestion {
	return &models.Suggestion{
		ID:               uuid.New(),
		Name:             "Daily Daf",
		Platform:         "WhatsApp",
		Link:             "https://chat.whatsapp.com/ABC123",
		Description:      "one page a day",
		Language:         "Hebrew",
		AdminContact:     "admin@example.com",
		AdminContactType: "email",
		Status:           models.SuggestionStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

func (suite *SuggestionServiceTestSuite) TestSubmitCreatesPendingSuggestion() {
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{}, nil)
	suite.mockRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.Suggestion) error {
			s.ID = uuid.New()
			return nil
		})

	req := suite.validRequest()
	req.Name = "  Daily Daf  "
	req.AdminContactType = "whatsapp"
	suggestion, err := suite.suggestionService.Submit(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Daily Daf", suggestion.Name)
	suite.Equal(models.SuggestionStatusPending, suggestion.Status)
	suite.Equal("whatsapp", suggestion.AdminContactType)
	suite.NotEqual(uuid.Nil, suggestion.ID)
}

func (suite *SuggestionServiceTestSuite) TestSubmitValidation() {
	testCases := []struct {
		name   string
		modify func(r *service.SubmitSuggestionRequest)
		field  string
	}{
		{name: "missing name", modify: func(r *service.SubmitSuggestionRequest) { r.Name = "" }, field: "name"},
		{name: "missing platform", modify: func(r *service.SubmitSuggestionRequest) { r.Platform = " " }, field: "platform"},
		{name: "missing link", modify: func(r *service.SubmitSuggestionRequest) { r.Link = "" }, field: "link"},
		{name: "malformed link", modify: func(r *service.SubmitSuggestionRequest) { r.Link = "chat.whatsapp.com/ABC" }, field: "link"},
		{name: "unknown contact type", modify: func(r *service.SubmitSuggestionRequest) { r.AdminContactType = "pager" }, field: "admin_contact_type"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.validRequest()
			tc.modify(req)

			_, err := suite.suggestionService.Submit(suite.ctx, req)

			var vErr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &vErr)
			suite.Equal(tc.field, vErr.Field)
		})
	}
}

func (suite *SuggestionServiceTestSuite) TestSubmitRejectsLinkAlreadyInDirectory() {
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{
		{ID: "1", Name: "Daf Group", Link: "https://chat.whatsapp.com/abc123?lang=he", Status: models.GroupStatusBroken},
	}, nil)
	suite.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := suite.suggestionService.Submit(suite.ctx, suite.validRequest())

	suite.ErrorIs(err, apperrors.ErrDuplicateLink)
	dup, _ := apperrors.AsDuplicate(err)
	suite.Equal("Daf Group", dup.Existing)
}

func (suite *SuggestionServiceTestSuite) TestSubmitSkipsCrossCheckWhenDirectoryUnavailable() {
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return(nil, apperrors.ErrKVStoreUnavailable)
	suite.mockRepo.EXPECT().Create(suite.ctx, gomock.Any()).Return(nil)

	_, err := suite.suggestionService.Submit(suite.ctx, suite.validRequest())

	suite.NoError(err)
}

func (suite *SuggestionServiceTestSuite) TestSubmitReportsDatabaseFailure() {
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{}, nil)
	suite.mockRepo.EXPECT().Create(suite.ctx, gomock.Any()).Return(errors.New("connection refused"))

	_, err := suite.suggestionService.Submit(suite.ctx, suite.validRequest())

	suite.ErrorContains(err, "failed to create suggestion")
}

func (suite *SuggestionServiceTestSuite) TestListNewestFirst() {
	newer := suite.pending()
	older := suite.pending()
	older.CreatedAt = newer.CreatedAt.Add(-time.Hour)
	suite.mockRepo.EXPECT().List(suite.ctx, 0).Return([]models.Suggestion{*newer, *older}, nil)

	suggestions, err := suite.suggestionService.List(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(suggestions, 2)
	suite.Equal(newer.ID, suggestions[0].ID)
}

func (suite *SuggestionServiceTestSuite) TestApprovePromotesAndDeletes() {
	suggestion := suite.pending()
	existing := models.GroupRecord{ID: "1", Name: "Mishna", Link: "https://t.me/mishna", Status: models.GroupStatusApproved}

	var saved []models.GroupRecord
	gomock.InOrder(
		suite.mockRepo.EXPECT().GetByID(suite.ctx, suggestion.ID).Return(suggestion, nil),
		suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{existing}, nil),
		suite.mockGroupRepo.EXPECT().Save(suite.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, groups []models.GroupRecord) error {
				saved = groups
				return nil
			}),
		suite.mockRepo.EXPECT().Delete(suite.ctx, suggestion.ID).Return(nil),
	)

	group, err := suite.suggestionService.Approve(suite.ctx, suggestion.ID)

	suite.Require().NoError(err)
	suite.NotEqual(suggestion.ID.String(), group.ID)
	suite.Equal(models.GroupStatusApproved, group.Status)
	suite.Equal(suggestion.Name, group.Name)
	suite.Equal(suggestion.Platform, group.Platform)
	suite.Equal(suggestion.Link, group.Link)
	suite.Equal(suggestion.Description, group.Description)
	suite.Equal(suggestion.Language, group.Language)
	suite.Equal(suggestion.AdminContact, group.AdminContact)
	suite.Equal(suggestion.AdminContactType, group.AdminContactType)
	suite.Require().Len(saved, 2)
	suite.Equal(existing, saved[0])
	suite.Equal(*group, saved[1])
}

func (suite *SuggestionServiceTestSuite) TestApproveDoesNotRecheckDuplicates() {
	suggestion := suite.pending()
	suite.mockRepo.EXPECT().GetByID(suite.ctx, suggestion.ID).Return(suggestion, nil)
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{
		{ID: "1", Name: suggestion.Name, Link: suggestion.Link, Status: models.GroupStatusApproved},
	}, nil)
	suite.mockGroupRepo.EXPECT().Save(suite.ctx, gomock.Len(2)).Return(nil)
	suite.mockRepo.EXPECT().Delete(suite.ctx, suggestion.ID).Return(nil)

	_, err := suite.suggestionService.Approve(suite.ctx, suggestion.ID)

	suite.NoError(err)
}

func (suite *SuggestionServiceTestSuite) TestApproveUnknownSuggestion() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(suite.ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.suggestionService.Approve(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrSuggestionNotFound)
}

func (suite *SuggestionServiceTestSuite) TestApproveStopsWhenDirectoryWriteFails() {
	suggestion := suite.pending()
	suite.mockRepo.EXPECT().GetByID(suite.ctx, suggestion.ID).Return(suggestion, nil)
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{}, nil)
	suite.mockGroupRepo.EXPECT().Save(suite.ctx, gomock.Any()).Return(apperrors.ErrKVStoreUnavailable)
	suite.mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	group, err := suite.suggestionService.Approve(suite.ctx, suggestion.ID)

	suite.Nil(group)
	suite.True(apperrors.IsStoreUnavailable(err))
}

func (suite *SuggestionServiceTestSuite) TestApproveReportsPartialFailure() {
	suggestion := suite.pending()
	deleteErr := errors.New("connection reset")
	suite.mockRepo.EXPECT().GetByID(suite.ctx, suggestion.ID).Return(suggestion, nil)
	suite.mockGroupRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{}, nil)
	suite.mockGroupRepo.EXPECT().Save(suite.ctx, gomock.Len(1)).Return(nil)
	suite.mockRepo.EXPECT().Delete(suite.ctx, suggestion.ID).Return(deleteErr)

	group, err := suite.suggestionService.Approve(suite.ctx, suggestion.ID)

	suite.Require().NotNil(group)
	suite.Equal(suggestion.Name, group.Name)
	pf, ok := apperrors.AsPartialFailure(err)
	suite.Require().True(ok)
	suite.Equal(suggestion.ID.String(), pf.SuggestionID)
	suite.Equal("approve", pf.Operation)
	suite.ErrorIs(err, deleteErr)
}

func (suite *SuggestionServiceTestSuite) TestRejectDeletes() {
	id := uuid.New()
	suite.mockRepo.EXPECT().Delete(suite.ctx, id).Return(nil)

	suite.NoError(suite.suggestionService.Reject(suite.ctx, id))
}

func (suite *SuggestionServiceTestSuite) TestRejectReportsDatabaseFailure() {
	id := uuid.New()
	suite.mockRepo.EXPECT().Delete(suite.ctx, id).Return(errors.New("connection refused"))

	suite.Error(suite.suggestionService.Reject(suite.ctx, id))
}

// TestSuggestionServiceTestSuite runs the test suite
func TestSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionServiceTestSuite))
}
