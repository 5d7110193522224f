package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/matcher"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

type AvailabilityRepository interface {
	LockEmployee(ctx context.Context, employeeID int64) error
	HasSchedule(ctx context.Context, employeeID int64) (bool, error)
	GetWeekly(ctx context.Context, employeeID int64) ([]*domain.AvailabilityEntry, error)
	GetOverrideDatesFrom(ctx context.Context, employeeID int64, from time.Time) ([]string, error)
	ReplaceWeekly(ctx context.Context, employeeID int64, entries []*domain.AvailabilityEntry) error
	ReplaceOverrides(ctx context.Context, employeeID int64, date time.Time, slots []domain.TimeSlot) error
}

type AppointmentRepository interface {
	GetScheduledByTechnicianFrom(ctx context.Context, technicianID int64, from time.Time) ([]*domain.Appointment, error)
	GetByTechnicianAndDate(ctx context.Context, technicianID int64, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// Matcher effective availability of a date
type Matcher interface {
	EffectiveSlots(ctx context.Context, employeeID int64, date time.Time) (*matcher.Effective, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
