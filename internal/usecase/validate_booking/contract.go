package validate_booking

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

// BookingRules the individual checks, implemented by *bookingrules.Service
type BookingRules interface {
	Grid() domain.SlotGrid
	ValidateBookingDeadline(start time.Time) error
	ValidateCellarOwnership(ctx context.Context, customerID, cellarID int64) error
	ValidateTechnicianSchedule(ctx context.Context, technicianID int64, start time.Time) error
	ValidateTimeSlotAvailability(ctx context.Context, req bookingrules.SlotRequest) (*bookingrules.SlotResult, error)
	ValidateDuplicateQuotation(ctx context.Context, jobType domain.JobType, address domain.AddressKey, date time.Time, excludeID int64) error
}

// TransactionManager runs the checks against one consistent snapshot
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics rejection and warning counters; nil disables them
type Metrics interface {
	IncRuleRejection(rule string)
	AddBufferWarnings(n int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
