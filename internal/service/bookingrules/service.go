package bookingrules

import (
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// Service the booking-legality rules consumed by the booking orchestrator.
// Every check returns a typed error; none of them retries or writes.
type Service struct {
	employees    EmployeeRepository
	appointments AppointmentRepository
	cellars      CellarRepository
	matcher      AvailabilityMatcher
	grid         domain.SlotGrid
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	employees EmployeeRepository,
	appointments AppointmentRepository,
	cellars CellarRepository,
	matcher AvailabilityMatcher,
	grid domain.SlotGrid,
	logger Logger,
) *Service {
	return &Service{
		employees:    employees,
		appointments: appointments,
		cellars:      cellars,
		matcher:      matcher,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Grid returns the slot grid the rules are evaluated against
func (s *Service) Grid() domain.SlotGrid {
	return s.grid
}

// dayBounds returns [midnight, next midnight) of t's day in the grid timezone
func (s *Service) dayBounds(t time.Time) (time.Time, time.Time) {
	from := s.grid.DateOf(t)
	return from, from.AddDate(0, 0, 1)
}
