package bookingrules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	cellarRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/cellar"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
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

type stubCellars map[int64]*domain.Cellar

func (s stubCellars) GetByID(_ context.Context, id int64) (*domain.Cellar, error) {
	c, ok := s[id]
	if !ok {
		return nil, cellarRepo.ErrCellarNotFound
	}
	return c, nil
}

// stubAppointments filters like the SQL repository does
type stubAppointments struct {
	items []*domain.Appointment
	calls int
}

func (s *stubAppointments) filter(from, to time.Time, statuses []domain.AppointmentStatus, keep func(a *domain.Appointment) bool) []*domain.Appointment {
	s.calls++
	allowed := make(map[domain.AppointmentStatus]bool)
	for _, st := range statuses {
		allowed[st] = true
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.StartAt.Before(from) || !a.StartAt.Before(to) || !allowed[a.Status] || !keep(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *stubAppointments) GetByTechnicianAndDate(_ context.Context, technicianID int64, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool { return a.TechnicianID == technicianID }), nil
}

func (s *stubAppointments) GetByAddressAndDate(_ context.Context, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	postal := address.Normalize().PostalCode
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool {
		return a.Address.Normalize().PostalCode == postal
	}), nil
}

func (s *stubAppointments) GetByJobTypeAddressAndDate(_ context.Context, jobType domain.JobType, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	postal := address.Normalize().PostalCode
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool {
		return a.JobType == jobType && a.Address.Normalize().PostalCode == postal
	}), nil
}

type stubMatcher struct {
	slots map[int64]map[domain.TimeSlot]bool
}

func (m stubMatcher) IsAvailable(_ context.Context, employeeID int64, _ time.Time, slot domain.TimeSlot) (bool, error) {
	return m.slots[employeeID][slot], nil
}

func at(day string, hour, minute int) time.Time {
	d, err := time.Parse(domain.DateFormat, day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	employees    stubEmployees
	cellars      stubCellars
	appointments *stubAppointments
	matcher      stubMatcher
}

func newFixture() *fixture {
	return &fixture{
		employees:    stubEmployees{},
		cellars:      stubCellars{},
		appointments: &stubAppointments{},
		matcher:      stubMatcher{slots: map[int64]map[domain.TimeSlot]bool{}},
	}
}

func (f *fixture) service(now time.Time) *Service {
	return NewService(f.employees, f.appointments, f.cellars, f.matcher, domain.DefaultSlotGrid(), logger.NewNop()).
		WithTimeProvider(fixedClock{now: now})
}
