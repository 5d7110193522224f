package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

const defaultRunTimeout = time.Minute

type OverrideRepository interface {
	DeleteOverridesBefore(ctx context.Context, before time.Time) (int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// OverrideCleanup deletes date overrides older than the retention window.
// Past overrides never influence availability again, they only grow the table.
type OverrideCleanup struct {
	repo          OverrideRepository
	grid          domain.SlotGrid
	retentionDays int
	timeProvider  TimeProvider
	logger        Logger
}

func NewOverrideCleanup(repo OverrideRepository, grid domain.SlotGrid, retentionDays int, logger Logger) *OverrideCleanup {
	return &OverrideCleanup{
		repo:          repo,
		grid:          grid,
		retentionDays: retentionDays,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider overrides the clock
func (c *OverrideCleanup) WithTimeProvider(tp TimeProvider) *OverrideCleanup {
	c.timeProvider = tp
	return c
}

// Cutoff first day that is kept
func (c *OverrideCleanup) Cutoff() time.Time {
	return c.grid.DateOf(c.timeProvider.Now()).AddDate(0, 0, -c.retentionDays)
}

// Run performs one cleanup pass
func (c *OverrideCleanup) Run(ctx context.Context) (int64, error) {
	cutoff := c.Cutoff()
	deleted, err := c.repo.DeleteOverridesBefore(ctx, cutoff)
	if err != nil {
		c.logger.Error("OverrideCleanup: delete before %s failed: %v", cutoff.Format(domain.DateFormat), err)
		return 0, err
	}
	c.logger.Info("OverrideCleanup: deleted %d override entries before %s", deleted, cutoff.Format(domain.DateFormat))
	return deleted, nil
}

// Schedule registers Run on a cron spec evaluated in the grid timezone and starts the scheduler.
// The caller stops it with Stop().
func (c *OverrideCleanup) Schedule(spec string) (*cron.Cron, error) {
	loc := c.grid.Location
	if loc == nil {
		loc = time.UTC
	}

	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
		defer cancel()
		_, _ = c.Run(ctx)
	}); err != nil {
		return nil, fmt.Errorf("worker: invalid cleanup schedule %q: %w", spec, err)
	}

	scheduler.Start()
	return scheduler, nil
}
