package service_test

import (
	"context"
	"testing"
	"time"

	"study-archive-backend/internal/database/models"
	apperrors "study-archive-backend/internal/errors"
	"study-archive-backend/internal/linkcheck"
	"study-archive-backend/internal/mocks"
	"study-archive-backend/internal/service"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	alive = linkcheck.Result{Verdict: linkcheck.Alive, Reason: "status 200"}
	dead  = linkcheck.Result{Verdict: linkcheck.Dead, Reason: "missing og:title", Rule: "whatsapp"}
)

// SweepServiceTestSuite defines the test suite for SweepService
type SweepServiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRepo   *mocks.MockGroupRepositoryInterface
	mockProber *mocks.MockProber
	sweep      *service.SweepService
	ctx        context.Context
}

// SetupTest sets up the test suite
func (suite *SweepServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockGroupRepositoryInterface(suite.ctrl)
	suite.mockProber = mocks.NewMockProber(suite.ctrl)
	suite.sweep = service.NewSweepService(suite.mockRepo, suite.mockProber, 0)
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *SweepServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *SweepServiceTestSuite) TestMarksDeadLinksAndWritesOnce() {
	deadGroup := record("1", "Daily Daf", "https://chat.whatsapp.com/DEAD", models.GroupStatusApproved)
	aliveGroup := record("2", "Mishna", "https://chat.whatsapp.com/ALIVE", models.GroupStatusApproved)
	suite.mockRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{deadGroup, aliveGroup}, nil)

	var saved []models.GroupRecord
	gomock.InOrder(
		suite.mockProber.EXPECT().Probe(suite.ctx, deadGroup.Link).Return(dead),
		suite.mockProber.EXPECT().Probe(suite.ctx, aliveGroup.Link).Return(alive),
		suite.mockRepo.EXPECT().Save(suite.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, groups []models.GroupRecord) error {
				saved = groups
				return nil
			}).Times(1),
	)

	report, err := suite.sweep.Run(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(2, report.Checked)
	suite.Equal(1, report.Broken)
	suite.Equal([]service.BrokenGroup{{Name: "Daily Daf", Link: deadGroup.Link}}, report.BrokenGroups)

	suite.Require().Len(saved, 2)
	suite.Equal(models.GroupStatusBroken, saved[0].Status)
	suite.NotNil(saved[0].BrokenAt)
	suite.Equal(aliveGroup, saved[1])
}

func (suite *SweepServiceTestSuite) TestSkipsBrokenAndLinklessRecords() {
	brokenAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	broken := record("1", "Old", "https://chat.whatsapp.com/OLD", models.GroupStatusBroken)
	broken.BrokenAt = &brokenAt
	noLink := record("2", "No Link", "  ", models.GroupStatusApproved)
	live := record("3", "Live", "https://t.me/live", models.GroupStatusApproved)
	suite.mockRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{broken, noLink, live}, nil)
	suite.mockProber.EXPECT().Probe(suite.ctx, live.Link).Return(alive).Times(1)
	suite.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	report, err := suite.sweep.Run(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(1, report.Checked)
	suite.Equal(0, report.Broken)
	suite.NotNil(report.BrokenGroups)
	suite.Empty(report.BrokenGroups)
}

func (suite *SweepServiceTestSuite) TestEmptyDirectory() {
	suite.mockRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{}, nil)

	report, err := suite.sweep.Run(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(&service.SweepReport{BrokenGroups: []service.BrokenGroup{}}, report)
}

func (suite *SweepServiceTestSuite) TestLoadFailure() {
	suite.mockRepo.EXPECT().Load(suite.ctx).Return(nil, apperrors.ErrKVStoreUnavailable)

	_, err := suite.sweep.Run(suite.ctx)

	suite.True(apperrors.IsStoreUnavailable(err))
}

func (suite *SweepServiceTestSuite) TestSaveFailure() {
	suite.mockRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{
		record("1", "Daily Daf", "https://chat.whatsapp.com/DEAD", models.GroupStatusApproved),
	}, nil)
	suite.mockProber.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(dead)
	suite.mockRepo.EXPECT().Save(suite.ctx, gomock.Any()).Return(apperrors.ErrKVStoreUnavailable)

	_, err := suite.sweep.Run(suite.ctx)

	suite.True(apperrors.IsStoreUnavailable(err))
}

func (suite *SweepServiceTestSuite) TestWaitsBetweenChecks() {
	sweep := service.NewSweepService(suite.mockRepo, suite.mockProber, 30*time.Millisecond)
	suite.mockRepo.EXPECT().Load(suite.ctx).Return([]models.GroupRecord{
		record("1", "A", "https://t.me/a", models.GroupStatusApproved),
		record("2", "B", "https://t.me/b", models.GroupStatusApproved),
		record("3", "C", "https://t.me/c", models.GroupStatusApproved),
	}, nil)

	var probedAt []time.Time
	suite.mockProber.EXPECT().Probe(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) linkcheck.Result {
			probedAt = append(probedAt, time.Now())
			return alive
		}).Times(3)

	_, err := sweep.Run(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(probedAt, 3)
	for i := 1; i < len(probedAt); i++ {
		suite.GreaterOrEqual(probedAt[i].Sub(probedAt[i-1]), 30*time.Millisecond)
	}
}

func (suite *SweepServiceTestSuite) TestCancellationDiscardsChanges() {
	ctx, cancel := context.WithCancel(suite.ctx)
	defer cancel()

	sweep := service.NewSweepService(suite.mockRepo, suite.mockProber, time.Hour)
	suite.mockRepo.EXPECT().Load(ctx).Return([]models.GroupRecord{
		record("1", "A", "https://t.me/a", models.GroupStatusApproved),
		record("2", "B", "https://t.me/b", models.GroupStatusApproved),
	}, nil)
	suite.mockProber.EXPECT().Probe(ctx, "https://t.me/a").
		DoAndReturn(func(context.Context, string) linkcheck.Result {
			cancel()
			return dead
		})
	suite.mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	report, err := sweep.Run(ctx)

	suite.Nil(report)
	suite.ErrorIs(err, context.Canceled)
}

// TestSweepServiceTestSuite runs the test suite
func TestSweepServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SweepServiceTestSuite))
}
