package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

// Service manages employees' weekly availability and per-date overrides.
// Every mutation runs in one read-committed transaction whose first statement takes
// the employee lock, so each later read sees the edits committed before the lock was granted.
type Service struct {
	employees    EmployeeRepository
	availability AvailabilityRepository
	appointments AppointmentRepository
	matcher      Matcher
	txManager    TransactionManager
	grid         domain.SlotGrid
	timeProvider TimeProvider
	logger       Logger
}

func NewService(
	employees EmployeeRepository,
	availability AvailabilityRepository,
	appointments AppointmentRepository,
	matcher Matcher,
	txManager TransactionManager,
	grid domain.SlotGrid,
	logger Logger,
) *Service {
	return &Service{
		employees:    employees,
		availability: availability,
		appointments: appointments,
		matcher:      matcher,
		txManager:    txManager,
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

// GetEmployeeSchedule returns the weekly calendar grouped per working day
func (s *Service) GetEmployeeSchedule(ctx context.Context, employeeID int64) (*models.WeeklySchedule, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	entries, err := s.availability.GetWeekly(ctx, employeeID)
	if err != nil {
		s.logger.Error("GetEmployeeSchedule: repository error for employee_id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeSchedule - repository error: %v", ErrInternal, err)
	}
	if len(entries) == 0 {
		return nil, ErrScheduleNotFound
	}

	return models.FromWeekly(employeeID, domain.GroupWeekly(entries, s.grid)), nil
}

// GetEmployeeScheduleForDate returns the effective slots of a date and whether an override applies
func (s *Service) GetEmployeeScheduleForDate(ctx context.Context, employeeID int64, rawDate string) (*models.DateSchedule, error) {
	date, _, err := s.parseWorkingDate(rawDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	eff, err := s.matcher.EffectiveSlots(ctx, employeeID, date)
	if err != nil {
		s.logger.Error("GetEmployeeScheduleForDate: matcher error for employee_id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeScheduleForDate - matcher error: %v", ErrInternal, err)
	}

	return models.FromEffective(employeeID, eff), nil
}

// AddEmployeeSchedule creates the weekly calendar of an employee that has none yet
func (s *Service) AddEmployeeSchedule(ctx context.Context, employeeID int64, week domain.WeeklySchedule) (*models.WeeklySchedule, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	rules := RulesFor(employee.Role, s.grid)

	var normalized domain.WeeklySchedule
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lock(ctx, employeeID); err != nil {
			return err
		}

		exists, err := s.availability.HasSchedule(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("%w: AddEmployeeSchedule - check existing: %v", ErrInternal, err)
		}
		if exists {
			return ErrScheduleAlreadyExists
		}

		normalized, err = normalizeWeek(s.grid, rules, week)
		if err != nil {
			return err
		}

		if err := s.availability.ReplaceWeekly(ctx, employeeID, normalized.Entries(employeeID)); err != nil {
			return fmt.Errorf("%w: AddEmployeeSchedule - replace weekly: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("AddEmployeeSchedule", employeeID, err)
		return nil, err
	}

	s.logger.Info("AddEmployeeSchedule: schedule created for employee_id=%d (%s rules)", employeeID, rules.Name())
	return models.FromWeekly(employeeID, normalized), nil
}

// UpdateEmployeeSchedule replaces an existing weekly calendar. Removing a (weekday, slot)
// that still carries a future SCHEDULED appointment on a non-overridden date is a conflict.
func (s *Service) UpdateEmployeeSchedule(ctx context.Context, employeeID int64, week domain.WeeklySchedule) (*models.WeeklySchedule, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	rules := RulesFor(employee.Role, s.grid)

	var normalized domain.WeeklySchedule
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lock(ctx, employeeID); err != nil {
			return err
		}

		current, err := s.availability.GetWeekly(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("%w: UpdateEmployeeSchedule - load current: %v", ErrInternal, err)
		}
		if len(current) == 0 {
			return ErrScheduleNotFound
		}

		normalized, err = normalizeWeek(s.grid, rules, week)
		if err != nil {
			return err
		}

		removed := removedWeekly(current, normalized)
		if len(removed) > 0 {
			if err := s.checkRemovedWeekly(ctx, employeeID, removed); err != nil {
				return err
			}
		}

		if err := s.availability.ReplaceWeekly(ctx, employeeID, normalized.Entries(employeeID)); err != nil {
			return fmt.Errorf("%w: UpdateEmployeeSchedule - replace weekly: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("UpdateEmployeeSchedule", employeeID, err)
		return nil, err
	}

	s.logger.Info("UpdateEmployeeSchedule: schedule replaced for employee_id=%d", employeeID)
	return models.FromWeekly(employeeID, normalized), nil
}

// PatchDateSchedule replaces the slots of a single date with override entries
func (s *Service) PatchDateSchedule(ctx context.Context, employeeID int64, req models.PatchDateRequest) (*models.DateSchedule, error) {
	date, weekday, err := s.parseWorkingDate(req.Date)
	if err != nil {
		return nil, err
	}
	requested, ok := domain.ParseWeekDay(req.DayOfWeek)
	if !ok || requested != weekday {
		return nil, fmt.Errorf("%w: %s is a %s, got %q", ErrDayOfWeekMismatch, req.Date, weekday, req.DayOfWeek)
	}

	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	rules := RulesFor(employee.Role, s.grid)

	slots, err := normalizeDay(s.grid, weekday, req.TimeSlots)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidateDay(weekday, slots); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lock(ctx, employeeID); err != nil {
			return err
		}

		before, err := s.matcher.EffectiveSlots(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("%w: PatchDateSchedule - effective slots: %v", ErrInternal, err)
		}

		keep := make(map[domain.TimeSlot]bool, len(slots))
		for _, sl := range slots {
			keep[sl] = true
		}
		removed := make(map[domain.TimeSlot]bool)
		for _, sl := range before.TimeSlots {
			if !keep[sl] {
				removed[sl] = true
			}
		}
		if len(removed) > 0 {
			if err := s.checkRemovedOnDate(ctx, employeeID, date, removed); err != nil {
				return err
			}
		}

		if err := s.availability.ReplaceOverrides(ctx, employeeID, date, slots); err != nil {
			return fmt.Errorf("%w: PatchDateSchedule - replace overrides: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("PatchDateSchedule", employeeID, err)
		return nil, err
	}

	s.logger.Info("PatchDateSchedule: override set for employee_id=%d on %s: %v", employeeID, req.Date, slots)
	return &models.DateSchedule{
		EmployeeID: employeeID,
		Date:       date,
		DayOfWeek:  weekday,
		TimeSlots:  slots,
		Override:   true,
	}, nil
}

// checkRemovedWeekly looks for future SCHEDULED appointments booked against a removed
// (weekday, slot) pair. Dates carrying overrides are governed by them and skipped.
func (s *Service) checkRemovedWeekly(ctx context.Context, employeeID int64, removed map[domain.WeekDay]map[domain.TimeSlot]bool) error {
	now := s.timeProvider.Now()

	appointments, err := s.appointments.GetScheduledByTechnicianFrom(ctx, employeeID, now)
	if err != nil {
		return fmt.Errorf("%w: checkRemovedWeekly - load appointments: %v", ErrInternal, err)
	}
	if len(appointments) == 0 {
		return nil
	}

	overrideDates, err := s.availability.GetOverrideDatesFrom(ctx, employeeID, s.grid.DateOf(now))
	if err != nil {
		return fmt.Errorf("%w: checkRemovedWeekly - load override dates: %v", ErrInternal, err)
	}
	overridden := make(map[string]bool, len(overrideDates))
	for _, d := range overrideDates {
		overridden[d] = true
	}

	for _, a := range appointments {
		local := s.grid.In(a.StartAt)
		if overridden[local.Format(domain.DateFormat)] {
			continue
		}
		day, ok := domain.WeekDayOf(local)
		if !ok {
			continue
		}
		slot, ok := s.grid.SlotAt(local.Hour())
		if !ok {
			continue
		}
		if removed[day][slot] {
			return fmt.Errorf("%w: appointment %d on %s at %s", ErrScheduleConflict, a.ID, local.Format(domain.DateFormat), slot)
		}
	}
	return nil
}

func (s *Service) checkRemovedOnDate(ctx context.Context, employeeID int64, date time.Time, removed map[domain.TimeSlot]bool) error {
	from := s.grid.DateOf(date)
	appointments, err := s.appointments.GetByTechnicianAndDate(ctx, employeeID, from, from.AddDate(0, 0, 1), domain.BlockingStatuses)
	if err != nil {
		return fmt.Errorf("%w: checkRemovedOnDate - load appointments: %v", ErrInternal, err)
	}

	for _, a := range appointments {
		slot, ok := s.grid.SlotAt(s.grid.In(a.StartAt).Hour())
		if ok && removed[slot] {
			return fmt.Errorf("%w: appointment %d on %s at %s", ErrScheduleConflict, a.ID, from.Format(domain.DateFormat), slot)
		}
	}
	return nil
}

func removedWeekly(current []*domain.AvailabilityEntry, next domain.WeeklySchedule) map[domain.WeekDay]map[domain.TimeSlot]bool {
	keep := make(map[domain.WeekDay]map[domain.TimeSlot]bool)
	for _, d := range next.Days {
		keep[d.DayOfWeek] = make(map[domain.TimeSlot]bool)
		for _, sl := range d.TimeSlots {
			keep[d.DayOfWeek][sl] = true
		}
	}

	removed := make(map[domain.WeekDay]map[domain.TimeSlot]bool)
	for _, e := range current {
		if e.DayOfWeek == nil || keep[*e.DayOfWeek][e.TimeSlot] {
			continue
		}
		if removed[*e.DayOfWeek] == nil {
			removed[*e.DayOfWeek] = make(map[domain.TimeSlot]bool)
		}
		removed[*e.DayOfWeek][e.TimeSlot] = true
	}
	return removed
}

func (s *Service) parseWorkingDate(raw string) (time.Time, domain.WeekDay, error) {
	date, err := s.grid.ParseDate(raw)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	day, ok := domain.WeekDayOf(date)
	if !ok {
		return time.Time{}, "", fmt.Errorf("%w: %s is a %s", ErrWeekendDate, raw, date.Weekday())
	}
	return date, day, nil
}

func (s *Service) getEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("getEmployee: employee_id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("getEmployee: repository error for employee_id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: getEmployee - repository error: %v", ErrInternal, err)
	}
	return employee, nil
}

func (s *Service) lock(ctx context.Context, employeeID int64) error {
	if err := s.availability.LockEmployee(ctx, employeeID); err != nil {
		return fmt.Errorf("%w: lock employee_id=%d: %v", ErrInternal, employeeID, err)
	}
	return nil
}

func (s *Service) logFailure(op string, employeeID int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: employee_id=%d: %v", op, employeeID, err)
		return
	}
	s.logger.Warn("%s: rejected for employee_id=%d: %v", op, employeeID, err)
}
