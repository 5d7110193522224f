package auto_assign_technician

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/bookingrules"
)

// JobRepository job catalog lookup
type JobRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Job, error)
}

// EmployeeRepository lists candidate technicians
type EmployeeRepository interface {
	ListActiveByRole(ctx context.Context, role string) ([]*domain.Employee, error)
}

// AvailabilityMatcher answers whether an employee works a slot on a date
type AvailabilityMatcher interface {
	IsAvailable(ctx context.Context, employeeID int64, date time.Time, slot domain.TimeSlot) (bool, error)
}

// SlotValidator booking-rule checks reused for every candidate
type SlotValidator interface {
	Grid() domain.SlotGrid
	ValidateSlotShape(start time.Time, durationMinutes int, jobType domain.JobType) (int, error)
	ValidateTimeSlotAvailability(ctx context.Context, req bookingrules.SlotRequest) (*bookingrules.SlotResult, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
