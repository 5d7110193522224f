package bookingrules

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// BookingDeadline latest moment a job starting at start may still be booked.
// Morning anchors close the previous day at MorningDeadlineHour,
// afternoon anchors close the same day at AfternoonDeadlineHour.
func BookingDeadline(grid domain.SlotGrid, start time.Time) time.Time {
	local := grid.In(start)
	if local.Hour() < grid.AfternoonFromHour {
		return grid.At(local.AddDate(0, 0, -1), grid.MorningDeadlineHour)
	}
	return grid.At(local, grid.AfternoonDeadlineHour)
}

// ValidateBookingDeadline rejects the booking once now is past the deadline of start
func (s *Service) ValidateBookingDeadline(start time.Time) error {
	deadline := BookingDeadline(s.grid, start)
	now := s.timeProvider.Now()
	if now.After(deadline) {
		return fmt.Errorf("%w: start %s, deadline was %s",
			ErrDeadlinePassed,
			s.grid.In(start).Format("2006-01-02 15:04"),
			deadline.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
