package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/matcher"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubEmployees map[int64]*domain.Employee

func (s stubEmployees) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := s[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return e, nil
}

// memAvailability in-memory availability store
type memAvailability struct {
	weekly    map[int64][]*domain.AvailabilityEntry
	overrides map[int64]map[string][]domain.TimeSlot
	locks     []int64
	ops       []string
}

func newMemAvailability() *memAvailability {
	return &memAvailability{
		weekly:    map[int64][]*domain.AvailabilityEntry{},
		overrides: map[int64]map[string][]domain.TimeSlot{},
	}
}

func (m *memAvailability) LockEmployee(_ context.Context, employeeID int64) error {
	m.ops = append(m.ops, "lock")
	m.locks = append(m.locks, employeeID)
	return nil
}

func (m *memAvailability) HasSchedule(_ context.Context, employeeID int64) (bool, error) {
	m.ops = append(m.ops, "has_schedule")
	return len(m.weekly[employeeID]) > 0, nil
}

func (m *memAvailability) GetWeekly(_ context.Context, employeeID int64) ([]*domain.AvailabilityEntry, error) {
	m.ops = append(m.ops, "get_weekly")
	return m.weekly[employeeID], nil
}

func (m *memAvailability) GetWeeklyByDay(_ context.Context, employeeID int64, day domain.WeekDay) ([]*domain.AvailabilityEntry, error) {
	m.ops = append(m.ops, "get_weekly_by_day")
	out := make([]*domain.AvailabilityEntry, 0)
	for _, e := range m.weekly[employeeID] {
		if *e.DayOfWeek == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memAvailability) GetOverrides(_ context.Context, employeeID int64, date time.Time) ([]*domain.AvailabilityEntry, error) {
	m.ops = append(m.ops, "get_overrides")
	out := make([]*domain.AvailabilityEntry, 0)
	d := date
	for _, s := range m.overrides[employeeID][date.Format(domain.DateFormat)] {
		out = append(out, &domain.AvailabilityEntry{EmployeeID: employeeID, SpecificDate: &d, TimeSlot: s})
	}
	return out, nil
}

func (m *memAvailability) GetOverrideDatesFrom(_ context.Context, employeeID int64, from time.Time) ([]string, error) {
	m.ops = append(m.ops, "get_override_dates")
	out := make([]string, 0)
	for d := range m.overrides[employeeID] {
		if d >= from.Format(domain.DateFormat) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memAvailability) ReplaceWeekly(_ context.Context, employeeID int64, entries []*domain.AvailabilityEntry) error {
	m.ops = append(m.ops, "replace_weekly")
	m.weekly[employeeID] = entries
	return nil
}

func (m *memAvailability) ReplaceOverrides(_ context.Context, employeeID int64, date time.Time, slots []domain.TimeSlot) error {
	m.ops = append(m.ops, "replace_overrides")
	if m.overrides[employeeID] == nil {
		m.overrides[employeeID] = map[string][]domain.TimeSlot{}
	}
	m.overrides[employeeID][date.Format(domain.DateFormat)] = slots
	return nil
}

type stubAppointments struct {
	items []*domain.Appointment
}

func (s *stubAppointments) GetScheduledByTechnicianFrom(_ context.Context, technicianID int64, from time.Time) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.TechnicianID == technicianID && a.Status == domain.StatusScheduled && !a.StartAt.Before(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointments) GetByTechnicianAndDate(_ context.Context, technicianID int64, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.TechnicianID != technicianID || a.StartAt.Before(from) || !a.StartAt.Before(to) {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

// inlineTx runs fn without a database
type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixture struct {
	employees    stubEmployees
	availability *memAvailability
	appointments *stubAppointments
	tx           *inlineTx
}

func newFixture() *fixture {
	return &fixture{
		employees: stubEmployees{
			1: {ID: 1, Role: domain.RoleTechnician, IsActive: true},
			2: {ID: 2, Role: "OFFICE", IsActive: true},
		},
		availability: newMemAvailability(),
		appointments: &stubAppointments{},
		tx:           &inlineTx{},
	}
}

func (f *fixture) service(now time.Time) *Service {
	grid := domain.DefaultSlotGrid()
	return NewService(
		f.employees,
		f.availability,
		f.appointments,
		matcher.NewService(f.availability, grid),
		f.tx,
		grid,
		logger.NewNop(),
	).WithTimeProvider(fixedClock{now: now})
}

func week(slots map[domain.WeekDay][]domain.TimeSlot) domain.WeeklySchedule {
	w := domain.WeeklySchedule{}
	for _, d := range domain.WorkingDays {
		if s, ok := slots[d]; ok {
			w.Days = append(w.Days, domain.DaySchedule{DayOfWeek: d, TimeSlots: s})
		}
	}
	return w
}

func everyDay(slots ...domain.TimeSlot) map[domain.WeekDay][]domain.TimeSlot {
	m := make(map[domain.WeekDay][]domain.TimeSlot, len(domain.WorkingDays))
	for _, d := range domain.WorkingDays {
		m[d] = slots
	}
	return m
}

func at(day string, hour int) time.Time {
	d, err := time.Parse(domain.DateFormat, day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}
