package auto_assign_technician

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	jobRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/job"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/bookingrules"
)

// UseCase picks a technician for a job: the first active technician, by id,
// who works the requested slot and has no overlapping appointment.
type UseCase struct {
	jobRepo      JobRepository
	employeeRepo EmployeeRepository
	matcher      AvailabilityMatcher
	rules        SlotValidator
	logger       Logger
}

func NewUseCase(
	jobRepo JobRepository,
	employeeRepo EmployeeRepository,
	matcher AvailabilityMatcher,
	rules SlotValidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		jobRepo:      jobRepo,
		employeeRepo: employeeRepo,
		matcher:      matcher,
		rules:        rules,
		logger:       logger,
	}
}

// Execute runs the selection. The result is advisory: the caller persists the
// appointment in its own transaction.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AutoAssignTechnician: validation failed: %v", err)
		return nil, err
	}

	grid := uc.rules.Grid()
	local := grid.In(req.Start)
	uc.logger.Info("AutoAssignTechnician: job=%q, start=%s", req.JobName, local.Format("2006-01-02 15:04"))

	job, err := uc.jobRepo.GetByName(ctx, req.JobName)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			uc.logger.Warn("AutoAssignTechnician: job %q not found", req.JobName)
			return nil, fmt.Errorf("%w: %q", ErrJobNotFound, req.JobName)
		}
		uc.logger.Error("AutoAssignTechnician: failed to get job %q: %v", req.JobName, err)
		return nil, fmt.Errorf("%w: failed to get job: %v", ErrInternal, err)
	}

	duration := resolveDuration(grid, req.DurationMinutes, job)

	// the shape does not depend on the technician
	required, err := uc.rules.ValidateSlotShape(req.Start, duration, job.Type)
	if err != nil {
		uc.logger.Warn("AutoAssignTechnician: rejected slot: %v", err)
		return nil, err
	}
	slot, _ := grid.SlotAt(local.Hour())

	technicians, err := uc.employeeRepo.ListActiveByRole(ctx, domain.RoleTechnician)
	if err != nil {
		uc.logger.Error("AutoAssignTechnician: failed to list technicians: %v", err)
		return nil, fmt.Errorf("%w: failed to list technicians: %v", ErrInternal, err)
	}

	working := 0
	for _, tech := range technicians {
		available, err := uc.matcher.IsAvailable(ctx, tech.ID, req.Start, slot)
		if err != nil {
			uc.logger.Error("AutoAssignTechnician: matcher failed for technician_id=%d: %v", tech.ID, err)
			return nil, fmt.Errorf("%w: matcher: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Debug("AutoAssignTechnician: technician_id=%d does not work %s", tech.ID, slot)
			continue
		}
		working++

		result, err := uc.rules.ValidateTimeSlotAvailability(ctx, bookingrules.SlotRequest{
			TechnicianID:    tech.ID,
			Start:           req.Start,
			DurationMinutes: duration,
			JobType:         job.Type,
		})
		if errors.Is(err, domain.ErrTimeConflict) {
			uc.logger.Debug("AutoAssignTechnician: technician_id=%d is booked: %v", tech.ID, err)
			continue
		}
		if err != nil {
			uc.logger.Error("AutoAssignTechnician: slot check failed for technician_id=%d: %v", tech.ID, err)
			return nil, fmt.Errorf("%w: slot check: %v", ErrInternal, err)
		}

		uc.logger.Info("AutoAssignTechnician: assigned technician_id=%d to %q at %s",
			tech.ID, job.Name, local.Format("2006-01-02 15:04"))

		return &Response{
			TechnicianID:    tech.ID,
			FirstName:       tech.FirstName,
			LastName:        tech.LastName,
			Start:           req.Start,
			JobType:         job.Type,
			DurationMinutes: duration,
			RequiredSlots:   required,
			Warnings:        warningStrings(result.Warnings),
		}, nil
	}

	if working == 0 {
		uc.logger.Warn("AutoAssignTechnician: no technician works %s %s", local.Format(domain.DateFormat), slot)
		return nil, fmt.Errorf("%w: no technician works %s at %s",
			ErrNoTechnicianAvailable, local.Format(domain.DateFormat), slot)
	}
	uc.logger.Warn("AutoAssignTechnician: all %d technicians working %s %s are booked", working, local.Format(domain.DateFormat), slot)
	return nil, fmt.Errorf("%w: all %d technicians working %s at %s are already booked",
		ErrNoTechnicianAvailable, working, local.Format(domain.DateFormat), slot)
}

// resolveDuration request, then catalog, then grid default
func resolveDuration(grid domain.SlotGrid, requested int, job *domain.Job) int {
	if requested > 0 {
		return requested
	}
	return grid.ResolveDuration(job.DefaultDurationMinutes, job.Type)
}

func validateRequest(req *Request) error {
	if req == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.JobName) == "" {
		return fmt.Errorf("%w: job name is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	return nil
}

func warningStrings(warnings []bookingrules.BufferWarning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}
