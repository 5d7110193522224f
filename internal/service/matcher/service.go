package matcher

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// Effective availability of an employee on one calendar date
type Effective struct {
	Date      time.Time
	DayOfWeek domain.WeekDay
	TimeSlots []domain.TimeSlot
	Override  bool
}

// Has returns true if slot is among the effective slots
func (e *Effective) Has(slot domain.TimeSlot) bool {
	for _, s := range e.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Service resolves availability with override-then-weekly precedence.
// Override entries for a date replace the weekly entries of that weekday entirely.
type Service struct {
	repo AvailabilityRepository
	grid domain.SlotGrid
}

func NewService(repo AvailabilityRepository, grid domain.SlotGrid) *Service {
	return &Service{repo: repo, grid: grid}
}

// EffectiveSlots returns the slots the employee works on date, in grid order.
// Weekends yield an empty result.
func (s *Service) EffectiveSlots(ctx context.Context, employeeID int64, date time.Time) (*Effective, error) {
	date = s.grid.DateOf(date)

	day, ok := domain.WeekDayOf(date)
	if !ok {
		return &Effective{Date: date, TimeSlots: []domain.TimeSlot{}}, nil
	}

	overrides, err := s.repo.GetOverrides(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: EffectiveSlots - overrides for employee_id=%d: %v", ErrInternal, employeeID, err)
	}
	if len(overrides) > 0 {
		return &Effective{
			Date:      date,
			DayOfWeek: day,
			TimeSlots: s.ordered(overrides),
			Override:  true,
		}, nil
	}

	weekly, err := s.repo.GetWeeklyByDay(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: EffectiveSlots - weekly for employee_id=%d: %v", ErrInternal, employeeID, err)
	}

	return &Effective{
		Date:      date,
		DayOfWeek: day,
		TimeSlots: s.ordered(weekly),
	}, nil
}

// IsAvailable returns true if the employee works slot on date
func (s *Service) IsAvailable(ctx context.Context, employeeID int64, date time.Time, slot domain.TimeSlot) (bool, error) {
	if !slot.IsValid() {
		return false, nil
	}
	eff, err := s.EffectiveSlots(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	return eff.Has(slot), nil
}

func (s *Service) ordered(entries []*domain.AvailabilityEntry) []domain.TimeSlot {
	set := domain.SlotSet(entries)
	slots := make([]domain.TimeSlot, 0, len(set))
	for _, anchor := range s.grid.Anchors {
		if set[anchor] {
			slots = append(slots, anchor)
		}
	}
	return slots
}
