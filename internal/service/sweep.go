package service

import (
	"context"
	"strings"
	"time"

	"study-archive-backend/internal/database/models"
	"study-archive-backend/internal/linkcheck"
	"study-archive-backend/internal/logger"
	"study-archive-backend/internal/repository"
)

// DefaultSweepDelay is the pause between two consecutive link probes
const DefaultSweepDelay = 500 * time.Millisecond

// BrokenGroup identifies a record the sweep marked broken
type BrokenGroup struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// SweepReport summarises one sweep
type SweepReport struct {
	Checked      int           `json:"checked"`
	Broken       int           `json:"broken"`
	BrokenGroups []BrokenGroup `json:"broken_groups"`
}

// SweepService probes every live directory link and marks dead ones broken
type SweepService struct {
	groupRepo repository.GroupRepositoryInterface
	prober    linkcheck.Prober
	delay     time.Duration
}

// NewSweepService creates a new sweep service. A negative delay is treated as zero.
func NewSweepService(groupRepo repository.GroupRepositoryInterface, prober linkcheck.Prober, delay time.Duration) *SweepService {
	if delay < 0 {
		delay = 0
	}
	return &SweepService{
		groupRepo: groupRepo,
		prober:    prober,
		delay:     delay,
	}
}

// Run performs one sweep. Probes run strictly one at a time with the configured
// delay between them. The collection is written once at the end and only when
// something changed. A cancelled ctx aborts the sweep and nothing is written.
func (s *SweepService) Run(ctx context.Context) (*SweepReport, error) {
	log := logger.WithContext(ctx)

	groups, err := s.groupRepo.Load(ctx)
	if err != nil {
		sweepRuns.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to load group directory for sweep")
		return nil, err
	}

	report := &SweepReport{BrokenGroups: []BrokenGroup{}}
	for i := range groups {
		group := &groups[i]
		if group.IsBroken() || strings.TrimSpace(group.Link) == "" {
			continue
		}

		if report.Checked > 0 {
			if err := sleepContext(ctx, s.delay); err != nil {
				sweepRuns.WithLabelValues("cancelled").Inc()
				log.WithError(err).Warn("Sweep cancelled, discarding in-memory changes")
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			sweepRuns.WithLabelValues("cancelled").Inc()
			return nil, err
		}

		result := s.prober.Probe(ctx, group.Link)
		report.Checked++
		sweepChecked.Inc()
		if result.IsAlive() {
			continue
		}

		brokenAt := time.Now().UTC()
		group.Status = models.GroupStatusBroken
		group.BrokenAt = &brokenAt
		report.Broken++
		report.BrokenGroups = append(report.BrokenGroups, BrokenGroup{Name: group.Name, Link: group.Link})
		sweepBroken.Inc()

		log.WithFields(map[string]interface{}{
			"group_id": group.ID,
			"name":     group.Name,
			"link":     group.Link,
			"rule":     result.Rule,
			"reason":   result.Reason,
		}).Info("Group link marked broken")
	}

	if report.Broken > 0 {
		if err := saveDirectory(ctx, s.groupRepo, groups); err != nil {
			sweepRuns.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	sweepRuns.WithLabelValues("ok").Inc()
	log.WithFields(map[string]interface{}{
		"checked": report.Checked,
		"broken":  report.Broken,
	}).Info("Sweep finished")
	return report, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
