package bookingrules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

type AppointmentRepository interface {
	GetByTechnicianAndDate(ctx context.Context, technicianID int64, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByAddressAndDate(ctx context.Context, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByJobTypeAddressAndDate(ctx context.Context, jobType domain.JobType, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

type CellarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cellar, error)
}

// AvailabilityMatcher answers whether an employee works a slot on a date
type AvailabilityMatcher interface {
	IsAvailable(ctx context.Context, employeeID int64, date time.Time, slot domain.TimeSlot) (bool, error)
}

// TimeProvider source of "now", replaced in tests
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider wall clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
