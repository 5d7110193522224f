package matcher

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// AvailabilityRepository source of weekly and override entries
type AvailabilityRepository interface {
	GetOverrides(ctx context.Context, employeeID int64, date time.Time) ([]*domain.AvailabilityEntry, error)
	GetWeeklyByDay(ctx context.Context, employeeID int64, day domain.WeekDay) ([]*domain.AvailabilityEntry, error)
}
