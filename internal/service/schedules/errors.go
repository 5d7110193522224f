package schedules

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

var (
	ErrInternal = errors.New("schedules: internal error")

	// ErrInvalidSchedule wrong day count, empty day, unknown or duplicate slot, role rule broken
	ErrInvalidSchedule   = fmt.Errorf("schedules: %w: invalid schedule", domain.ErrMissingData)
	ErrInvalidDate       = fmt.Errorf("schedules: %w: invalid date, expected YYYY-MM-DD", domain.ErrMissingData)
	ErrWeekendDate       = fmt.Errorf("schedules: %w: weekends cannot be scheduled", domain.ErrMissingData)
	ErrDayOfWeekMismatch = fmt.Errorf("schedules: %w: day of week does not match the date", domain.ErrMissingData)

	ErrEmployeeNotFound      = fmt.Errorf("schedules: %w: employee not found", domain.ErrNotFound)
	ErrScheduleNotFound      = fmt.Errorf("schedules: %w: schedule not found", domain.ErrNotFound)
	ErrScheduleAlreadyExists = fmt.Errorf("schedules: %w: schedule already exists", domain.ErrAlreadyExists)

	// ErrScheduleConflict removing a slot would orphan a SCHEDULED appointment
	ErrScheduleConflict = fmt.Errorf("schedules: %w: slot has a scheduled appointment", domain.ErrConflict)
)
