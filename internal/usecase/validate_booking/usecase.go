package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	jobRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/job"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/bookingrules"
)

// Rule names used as the metrics label
const (
	ruleServiceType        = "service_type"
	ruleProvince           = "province"
	ruleCellar             = "cellar_ownership"
	ruleDeadline           = "deadline"
	ruleTechnicianSchedule = "technician_schedule"
	ruleTimeSlot           = "time_slot"
	ruleDuplicateQuotation = "duplicate_quotation"
)

// UseCase runs every booking rule for one appointment, stopping at the first rejection
type UseCase struct {
	jobRepo   JobRepository
	rules     BookingRules
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

func NewUseCase(
	jobRepo JobRepository,
	rules BookingRules,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		jobRepo:   jobRepo,
		rules:     rules,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

type check struct {
	rule string
	run  func(ctx context.Context) error
}

// Execute validates the request inside a serializable transaction so that the
// duplicate and overlap reads see the same snapshot
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	grid := uc.rules.Grid()
	uc.logger.Info("ValidateBooking: technician=%d, customer=%d, job=%q, start=%s, exclude=%d",
		req.TechnicianID, req.CustomerID, req.JobName, grid.In(req.Start).Format("2006-01-02 15:04"), req.ExcludeAppointmentID)

	job, err := uc.jobRepo.GetByName(ctx, req.JobName)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			uc.logger.Warn("ValidateBooking: job %q not found", req.JobName)
			return nil, fmt.Errorf("%w: %q", ErrJobNotFound, req.JobName)
		}
		uc.logger.Error("ValidateBooking: failed to get job %q: %v", req.JobName, err)
		return nil, fmt.Errorf("%w: failed to get job: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = grid.ResolveDuration(job.DefaultDurationMinutes, job.Type)
	}

	var slot *bookingrules.SlotResult
	checks := []check{
		{ruleServiceType, func(context.Context) error {
			return bookingrules.ValidateServiceTypeRestrictions(job.Type, req.Role)
		}},
		{ruleProvince, func(context.Context) error {
			return bookingrules.ValidateProvinceRestriction(req.Address.Province, req.Address.PostalCode)
		}},
		{ruleCellar, func(ctx context.Context) error {
			if req.CellarID == nil {
				return nil
			}
			return uc.rules.ValidateCellarOwnership(ctx, req.CustomerID, *req.CellarID)
		}},
		{ruleDeadline, func(context.Context) error {
			return uc.rules.ValidateBookingDeadline(req.Start)
		}},
		{ruleTechnicianSchedule, func(ctx context.Context) error {
			return uc.rules.ValidateTechnicianSchedule(ctx, req.TechnicianID, req.Start)
		}},
		{ruleTimeSlot, func(ctx context.Context) error {
			var err error
			slot, err = uc.rules.ValidateTimeSlotAvailability(ctx, bookingrules.SlotRequest{
				TechnicianID:         req.TechnicianID,
				Start:                req.Start,
				DurationMinutes:      duration,
				JobType:              job.Type,
				ExcludeAppointmentID: req.ExcludeAppointmentID,
			})
			return err
		}},
		{ruleDuplicateQuotation, func(ctx context.Context) error {
			return uc.rules.ValidateDuplicateQuotation(ctx, job.Type, req.Address, req.Start, req.ExcludeAppointmentID)
		}},
	}

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		for _, c := range checks {
			if err := c.run(ctx); err != nil {
				return uc.reject(c.rule, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingrules.ErrInternal) {
			uc.logger.Error("ValidateBooking: technician=%d: %v", req.TechnicianID, err)
		} else {
			uc.logger.Warn("ValidateBooking: rejected technician=%d: %v", req.TechnicianID, err)
		}
		return nil, err
	}

	warnings := make([]string, 0, len(slot.Warnings))
	for _, w := range slot.Warnings {
		warnings = append(warnings, w.String())
	}
	if uc.metrics != nil && len(warnings) > 0 {
		uc.metrics.AddBufferWarnings(len(warnings))
	}

	uc.logger.Info("ValidateBooking: accepted technician=%d, job=%q, duration=%d, warnings=%d",
		req.TechnicianID, job.Name, duration, len(warnings))

	return &Response{
		JobType:         job.Type,
		DurationMinutes: slot.DurationMinutes,
		RequiredSlots:   slot.RequiredSlots,
		Deadline:        bookingrules.BookingDeadline(grid, req.Start),
		Warnings:        warnings,
	}, nil
}

// reject counts a business rejection; infrastructure failures are not counted
func (uc *UseCase) reject(rule string, err error) error {
	if errors.Is(err, bookingrules.ErrInternal) {
		return err
	}
	if uc.metrics != nil {
		uc.metrics.IncRuleRejection(rule)
	}
	return err
}

func validateRequest(req *Request) error {
	if req == nil {
		return ErrInvalidInput
	}
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technician id is required", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
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
