package bookingrules

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// SlotRequest a technician time range to check against existing bookings
type SlotRequest struct {
	TechnicianID    int64
	Start           time.Time
	DurationMinutes int
	JobType         domain.JobType
	// ExcludeAppointmentID the appointment being edited, 0 for a new booking
	ExcludeAppointmentID int64
}

// BufferWarning a neighbouring appointment closer than the buffer. It does not block the booking.
type BufferWarning struct {
	AppointmentID int64
	GapMinutes    int
}

func (w BufferWarning) String() string {
	return fmt.Sprintf("only %d minutes between this job and appointment %d", w.GapMinutes, w.AppointmentID)
}

// SlotResult outcome of an accepted slot check
type SlotResult struct {
	DurationMinutes int
	RequiredSlots   int
	Warnings        []BufferWarning
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateSlotShape checks the anchor, the remaining day and the job type's
// allowed anchors without looking at other bookings. Returns the number of grid slots the job occupies.
func (s *Service) ValidateSlotShape(start time.Time, durationMinutes int, jobType domain.JobType) (int, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	if !s.grid.IsBookableAnchor(start) {
		return 0, fmt.Errorf("%w: %s, valid times are %s",
			ErrInvalidTimeSlot, s.grid.In(start).Format(domain.TimeFormat), anchorHours(s.grid.BookableAnchors))
	}

	local := s.grid.In(start)
	required := s.grid.RequiredSlots(durationMinutes)
	if !s.grid.FitsRemainingDay(s.grid.SlotIndex(local.Hour()), required) {
		return 0, fmt.Errorf("%w: %d minutes from %s needs %d slots",
			ErrExceedsDay, durationMinutes, local.Format(domain.TimeFormat), required)
	}

	if !s.grid.AllowsStart(jobType, start) {
		return 0, fmt.Errorf("%w: %s, installations start at %s",
			ErrInstallationStart, local.Format(domain.TimeFormat), anchorHours(s.grid.InstallationAnchors))
	}

	return required, nil
}

// ValidateTimeSlotAvailability checks the slot shape and the technician's other
// SCHEDULED appointments of the same day. Overlap is a blocking ErrTimeConflict,
// a gap shorter than the buffer only produces a warning.
func (s *Service) ValidateTimeSlotAvailability(ctx context.Context, req SlotRequest) (*SlotResult, error) {
	required, err := s.ValidateSlotShape(req.Start, req.DurationMinutes, req.JobType)
	if err != nil {
		return nil, err
	}

	from, to := s.dayBounds(req.Start)
	existing, err := s.appointments.GetByTechnicianAndDate(ctx, req.TechnicianID, from, to, domain.BlockingStatuses)
	if err != nil {
		s.logger.Error("ValidateTimeSlotAvailability: repository error for technician_id=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: ValidateTimeSlotAvailability - repository error: %v", ErrInternal, err)
	}

	warnings, err := CheckConflicts(s.grid, req.Start, req.DurationMinutes, existing, req.ExcludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w, technician_id=%d", err, req.TechnicianID)
	}

	for _, w := range warnings {
		s.logger.Warn("ValidateTimeSlotAvailability: buffer warning for technician_id=%d: %s", req.TechnicianID, w)
	}

	return &SlotResult{
		DurationMinutes: req.DurationMinutes,
		RequiredSlots:   required,
		Warnings:        warnings,
	}, nil
}

// CheckConflicts compares [start, start+duration) with the existing appointments.
// The appointment with id excludeID and non-blocking statuses are skipped.
func CheckConflicts(
	grid domain.SlotGrid,
	start time.Time,
	durationMinutes int,
	existing []*domain.Appointment,
	excludeID int64,
) ([]BufferWarning, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	buffer := time.Duration(grid.BufferMinutes) * time.Minute

	warnings := make([]BufferWarning, 0)
	for _, a := range existing {
		if (excludeID != 0 && a.ID == excludeID) || !a.BlocksTechnician() {
			continue
		}

		otherStart := a.StartAt
		otherEnd := a.EndAt(grid.ResolveDuration(a.DurationMinutes, a.JobType))

		if Overlaps(start, end, otherStart, otherEnd) {
			return nil, fmt.Errorf("%w: overlaps appointment %d (%s-%s)",
				ErrTimeConflict, a.ID,
				grid.In(otherStart).Format(domain.TimeFormat), grid.In(otherEnd).Format(domain.TimeFormat))
		}

		var gap time.Duration
		if !otherEnd.After(start) {
			gap = start.Sub(otherEnd)
		} else {
			gap = otherStart.Sub(end)
		}
		if gap > 0 && gap < buffer {
			warnings = append(warnings, BufferWarning{AppointmentID: a.ID, GapMinutes: int(gap.Minutes())})
		}
	}

	return warnings, nil
}

func anchorHours(anchors []domain.TimeSlot) string {
	hours := make([]string, 0, len(anchors))
	for _, a := range anchors {
		hours = append(hours, strconv.Itoa(a.Hour()))
	}
	return strings.Join(hours, "/")
}
