package bookingrules

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

var (
	ErrInternal = errors.New("bookingrules: internal error")

	// validation
	ErrInvalidTimeSlot   = fmt.Errorf("bookingrules: %w: invalid time slot", domain.ErrMissingData)
	ErrInvalidDuration   = fmt.Errorf("bookingrules: %w: invalid job duration", domain.ErrMissingData)
	ErrMissingPostalCode = fmt.Errorf("bookingrules: %w: postal code is required", domain.ErrMissingData)

	// business rules
	ErrDeadlinePassed         = fmt.Errorf("bookingrules: %w: booking deadline has passed", domain.ErrRuleViolation)
	ErrExceedsDay             = fmt.Errorf("bookingrules: %w: job does not fit in the remaining slots of the day", domain.ErrRuleViolation)
	ErrInstallationStart      = fmt.Errorf("bookingrules: %w: installation cannot start at this time", domain.ErrRuleViolation)
	ErrDuplicateAddressDay    = fmt.Errorf("bookingrules: %w: an appointment is already scheduled at this address on this day", domain.ErrRuleViolation)
	ErrDuplicateQuotation     = fmt.Errorf("bookingrules: %w: a quotation already exists at this address on this day", domain.ErrRuleViolation)
	ErrUnsupportedProvince    = fmt.Errorf("bookingrules: %w: unsupported province", domain.ErrRuleViolation)
	ErrPostalProvinceMismatch = fmt.Errorf("bookingrules: %w: postal code does not match province", domain.ErrRuleViolation)
	ErrServiceTypeNotAllowed  = fmt.Errorf("bookingrules: %w: service type not allowed for role", domain.ErrRuleViolation)
	ErrCellarNotOwned         = fmt.Errorf("bookingrules: %w: cellar does not belong to the customer", domain.ErrRuleViolation)
	ErrCellarInactive         = fmt.Errorf("bookingrules: %w: cellar is inactive", domain.ErrRuleViolation)
	ErrTechnicianInactive     = fmt.Errorf("bookingrules: %w: technician is inactive", domain.ErrRuleViolation)
	ErrNotATechnician         = fmt.Errorf("bookingrules: %w: employee is not a technician", domain.ErrRuleViolation)
	ErrTechnicianNotScheduled = fmt.Errorf("bookingrules: %w: technician does not work this slot", domain.ErrRuleViolation)

	// time conflict is its own class so callers can show a dedicated message
	ErrTimeConflict = fmt.Errorf("bookingrules: %w", domain.ErrTimeConflict)

	// not found
	ErrTechnicianNotFound = fmt.Errorf("bookingrules: %w: technician not found", domain.ErrNotFound)
	ErrCellarNotFound     = fmt.Errorf("bookingrules: %w: cellar not found", domain.ErrNotFound)
)
