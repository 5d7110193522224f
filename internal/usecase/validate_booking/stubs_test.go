package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	cellarRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/cellar"
	employeeRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/employee"
	jobRepo "github.com/m04kA/SMC-ServiceScheduler/internal/infra/storage/job"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/bookingrules"
	"github.com/m04kA/SMC-ServiceScheduler/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubJobs map[string]*domain.Job

func (s stubJobs) GetByName(_ context.Context, name string) (*domain.Job, error) {
	j, ok := s[name]
	if !ok {
		return nil, jobRepo.ErrJobNotFound
	}
	return j, nil
}

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

type stubAppointments []*domain.Appointment

func (s stubAppointments) filter(from, to time.Time, statuses []domain.AppointmentStatus, keep func(a *domain.Appointment) bool) []*domain.Appointment {
	out := make([]*domain.Appointment, 0)
	for _, a := range s {
		if a.StartAt.Before(from) || !a.StartAt.Before(to) || !keep(a) {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func (s stubAppointments) GetByTechnicianAndDate(_ context.Context, technicianID int64, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool { return a.TechnicianID == technicianID }), nil
}

func (s stubAppointments) GetByAddressAndDate(_ context.Context, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool { return a.Address.Equal(address) }), nil
}

func (s stubAppointments) GetByJobTypeAddressAndDate(_ context.Context, jobType domain.JobType, address domain.AddressKey, from, to time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return s.filter(from, to, statuses, func(a *domain.Appointment) bool {
		return a.JobType == jobType && a.Address.Equal(address)
	}), nil
}

// stubMatcher technician id -> slots worked on every date
type stubMatcher map[int64][]domain.TimeSlot

func (m stubMatcher) IsAvailable(_ context.Context, employeeID int64, _ time.Time, slot domain.TimeSlot) (bool, error) {
	for _, s := range m[employeeID] {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

type inlineTx struct{ calls int }

func (tx *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type recMetrics struct {
	rejections map[string]int
	warnings   int
}

func (m *recMetrics) IncRuleRejection(rule string) {
	if m.rejections == nil {
		m.rejections = map[string]int{}
	}
	m.rejections[rule]++
}

func (m *recMetrics) AddBufferWarnings(n int) { m.warnings += n }

func at(day string, hour, minute int) time.Time {
	d, err := time.Parse(domain.DateFormat, day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

var montreal = domain.AddressKey{Street: "1000 Rue De La Gauchetiere", City: "Montreal", Province: "QC", PostalCode: "H3B 1B1"}

type fixture struct {
	jobs         stubJobs
	employees    stubEmployees
	cellars      stubCellars
	appointments stubAppointments
	matcher      stubMatcher
	tx           *inlineTx
	metrics      *recMetrics
}

func newFixture() *fixture {
	return &fixture{
		jobs: stubJobs{
			"Cellar quotation":  {ID: 1, Name: "Cellar quotation", Type: domain.JobTypeQuotation, DefaultDurationMinutes: 30},
			"Compressor repair": {ID: 2, Name: "Compressor repair", Type: domain.JobTypeRepair, DefaultDurationMinutes: 90},
		},
		employees: stubEmployees{
			1: {ID: 1, Role: domain.RoleTechnician, IsActive: true},
		},
		cellars: stubCellars{
			7: {ID: 7, OwnerID: 100, IsActive: true},
			8: {ID: 8, OwnerID: 200, IsActive: true},
		},
		matcher: stubMatcher{1: {domain.SlotNineAM, domain.SlotOnePM}},
		tx:      &inlineTx{},
		metrics: &recMetrics{},
	}
}

func (f *fixture) useCase(now time.Time) *UseCase {
	log := logger.NewNop()
	rules := bookingrules.NewService(f.employees, f.appointments, f.cellars, f.matcher, domain.DefaultSlotGrid(), log).
		WithTimeProvider(fixedClock{now: now})
	return NewUseCase(f.jobs, rules, f.tx, f.metrics, log)
}
