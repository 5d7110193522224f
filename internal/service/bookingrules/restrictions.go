package bookingrules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	cellarRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/cellar"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
)

// ValidateServiceTypeRestrictions customers booking for themselves may only request a quotation;
// staff roles may book any job type
func ValidateServiceTypeRestrictions(jobType domain.JobType, role string) error {
	if strings.EqualFold(strings.TrimSpace(role), domain.RoleCustomer) && jobType != domain.JobTypeQuotation {
		return fmt.Errorf("%w: role %s may only book %s, got %s", ErrServiceTypeNotAllowed, domain.RoleCustomer, domain.JobTypeQuotation, jobType)
	}
	return nil
}

// ValidateCellarOwnership the cellar must exist, be active and belong to the customer
func (s *Service) ValidateCellarOwnership(ctx context.Context, customerID, cellarID int64) error {
	cellar, err := s.cellars.GetByID(ctx, cellarID)
	if err != nil {
		if errors.Is(err, cellarRepo.ErrCellarNotFound) {
			return fmt.Errorf("%w: cellar_id=%d", ErrCellarNotFound, cellarID)
		}
		s.logger.Error("ValidateCellarOwnership: repository error for cellar_id=%d: %v", cellarID, err)
		return fmt.Errorf("%w: ValidateCellarOwnership - repository error: %v", ErrInternal, err)
	}

	if !cellar.IsActive {
		return fmt.Errorf("%w: cellar_id=%d", ErrCellarInactive, cellarID)
	}
	if cellar.OwnerID != customerID {
		return fmt.Errorf("%w: cellar_id=%d, customer_id=%d", ErrCellarNotOwned, cellarID, customerID)
	}
	return nil
}

// ValidateTechnicianSchedule the technician must exist, be an active technician
// and work the anchor of start on that date
func (s *Service) ValidateTechnicianSchedule(ctx context.Context, technicianID int64, start time.Time) error {
	if _, err := s.activeTechnician(ctx, technicianID); err != nil {
		return err
	}

	slot, ok := s.grid.SlotAt(s.grid.In(start).Hour())
	if !ok || !s.grid.IsBookableAnchor(start) {
		return s.invalidSlotError(start)
	}

	available, err := s.matcher.IsAvailable(ctx, technicianID, start, slot)
	if err != nil {
		s.logger.Error("ValidateTechnicianSchedule: matcher error for technician_id=%d: %v", technicianID, err)
		return fmt.Errorf("%w: ValidateTechnicianSchedule - matcher error: %v", ErrInternal, err)
	}
	if !available {
		return fmt.Errorf("%w: technician_id=%d, %s %s",
			ErrTechnicianNotScheduled, technicianID, s.grid.In(start).Format(domain.DateFormat), slot)
	}
	return nil
}

func (s *Service) activeTechnician(ctx context.Context, technicianID int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("%w: technician_id=%d", ErrTechnicianNotFound, technicianID)
		}
		s.logger.Error("activeTechnician: repository error for technician_id=%d: %v", technicianID, err)
		return nil, fmt.Errorf("%w: activeTechnician - repository error: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		return nil, fmt.Errorf("%w: technician_id=%d", ErrTechnicianInactive, technicianID)
	}
	if !employee.IsTechnician() {
		return nil, fmt.Errorf("%w: employee_id=%d has role %s", ErrNotATechnician, technicianID, employee.Role)
	}
	return employee, nil
}
