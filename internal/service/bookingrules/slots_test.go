package bookingrules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

func TestOverlaps(t *testing.T) {
	a1, a2 := at("2025-12-10", 9, 0), at("2025-12-10", 11, 0)
	b1, b2 := at("2025-12-10", 10, 0), at("2025-12-10", 12, 0)
	c1, c2 := at("2025-12-10", 11, 0), at("2025-12-10", 13, 0)

	assert.True(t, Overlaps(a1, a2, b1, b2))
	assert.True(t, Overlaps(b1, b2, a1, a2), "overlap is symmetric")
	assert.False(t, Overlaps(a1, a2, c1, c2), "touching ranges do not overlap")
	assert.False(t, Overlaps(c1, c2, a1, a2))
	assert.True(t, Overlaps(a1, a2, a1, a2))
}

func TestValidateSlotShape(t *testing.T) {
	svc := newFixture().service(at("2025-12-01", 8, 0))

	tests := []struct {
		name     string
		start    time.Time
		duration int
		jobType  domain.JobType
		wantErr  error
		wantReq  int
	}{
		{"installation at 09:00", at("2025-12-10", 9, 0), 240, domain.JobTypeInstallation, nil, 2},
		{"installation at 11:00", at("2025-12-10", 11, 0), 240, domain.JobTypeInstallation, nil, 2},
		{"installation at 13:00", at("2025-12-10", 13, 0), 240, domain.JobTypeInstallation, nil, 2},
		{"installation at 15:00", at("2025-12-10", 15, 0), 240, domain.JobTypeInstallation, ErrInstallationStart, 0},
		{"short installation at 15:00", at("2025-12-10", 15, 0), 120, domain.JobTypeInstallation, ErrInstallationStart, 0},
		{"installation at 17:00 is not an anchor", at("2025-12-10", 17, 0), 240, domain.JobTypeInstallation, ErrInvalidTimeSlot, 0},
		{"quotation at 15:00", at("2025-12-10", 15, 0), 30, domain.JobTypeQuotation, nil, 1},
		{"repair at 15:00", at("2025-12-10", 15, 0), 90, domain.JobTypeRepair, nil, 1},
		{"three hour repair at 15:00 fills the day", at("2025-12-10", 15, 0), 180, domain.JobTypeRepair, nil, 2},
		{"five hour repair at 15:00", at("2025-12-10", 15, 0), 300, domain.JobTypeRepair, ErrExceedsDay, 0},
		{"off-grid hour", at("2025-12-10", 10, 0), 60, domain.JobTypeMaintenance, ErrInvalidTimeSlot, 0},
		{"off-grid minute", at("2025-12-10", 9, 30), 60, domain.JobTypeMaintenance, ErrInvalidTimeSlot, 0},
		{"zero duration", at("2025-12-10", 9, 0), 0, domain.JobTypeMaintenance, ErrInvalidDuration, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			required, err := svc.ValidateSlotShape(tt.start, tt.duration, tt.jobType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReq, required)
		})
	}
}

func TestValidateSlotShape_InvalidTimeMessage(t *testing.T) {
	svc := newFixture().service(at("2025-12-01", 8, 0))

	_, err := svc.ValidateSlotShape(at("2025-12-10", 10, 0), 60, domain.JobTypeMaintenance)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingData)
	assert.Contains(t, err.Error(), "valid times are 9/11/13/15")
}

func TestCheckConflicts(t *testing.T) {
	grid := domain.DefaultSlotGrid()
	day := "2025-12-10"
	existing := func(id int64, start time.Time, minutes int, status domain.AppointmentStatus) *domain.Appointment {
		return &domain.Appointment{ID: id, TechnicianID: 1, StartAt: start, DurationMinutes: minutes, JobType: domain.JobTypeRepair, Status: status}
	}

	t.Run("back to back is accepted without warning", func(t *testing.T) {
		warnings, err := CheckConflicts(grid, at(day, 11, 0), 60, []*domain.Appointment{
			existing(1, at(day, 9, 0), 120, domain.StatusScheduled),
		}, 0)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("fifteen minute gap warns but accepts", func(t *testing.T) {
		warnings, err := CheckConflicts(grid, at(day, 11, 0), 60, []*domain.Appointment{
			existing(2, at(day, 9, 0), 105, domain.StatusScheduled),
		}, 0)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, BufferWarning{AppointmentID: 2, GapMinutes: 15}, warnings[0])
	})

	t.Run("gap after the new job warns too", func(t *testing.T) {
		warnings, err := CheckConflicts(grid, at(day, 9, 0), 100, []*domain.Appointment{
			existing(3, at(day, 11, 0), 60, domain.StatusScheduled),
		}, 0)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, 20, warnings[0].GapMinutes)
	})

	t.Run("ten minute overlap is rejected", func(t *testing.T) {
		_, err := CheckConflicts(grid, at(day, 11, 0), 60, []*domain.Appointment{
			existing(4, at(day, 9, 0), 130, domain.StatusScheduled),
		}, 0)
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.ErrorIs(t, err, domain.ErrTimeConflict)
	})

	t.Run("edited appointment never conflicts with itself", func(t *testing.T) {
		self := existing(5, at(day, 11, 0), 60, domain.StatusScheduled)
		_, err := CheckConflicts(grid, at(day, 11, 0), 60, []*domain.Appointment{self}, 5)
		assert.NoError(t, err)
	})

	t.Run("cancelled and completed appointments do not block", func(t *testing.T) {
		_, err := CheckConflicts(grid, at(day, 11, 0), 60, []*domain.Appointment{
			existing(6, at(day, 11, 0), 60, domain.StatusCancelled),
			existing(7, at(day, 11, 0), 60, domain.StatusCompleted),
		}, 0)
		assert.NoError(t, err)
	})

	t.Run("unknown duration falls back to the job type default", func(t *testing.T) {
		// repair defaults to 90 minutes: 09:00-10:30 overlaps a job starting 10:00
		other := existing(8, at(day, 9, 0), 0, domain.StatusScheduled)
		_, err := CheckConflicts(grid, at(day, 10, 0), 30, []*domain.Appointment{other}, 0)
		assert.ErrorIs(t, err, ErrTimeConflict)
	})
}

func TestValidateTimeSlotAvailability(t *testing.T) {
	day := "2025-12-10"
	f := newFixture()
	f.appointments.items = []*domain.Appointment{
		{ID: 10, TechnicianID: 1, StartAt: at(day, 9, 0), DurationMinutes: 105, JobType: domain.JobTypeRepair, Status: domain.StatusScheduled},
		{ID: 11, TechnicianID: 2, StartAt: at(day, 11, 0), DurationMinutes: 120, JobType: domain.JobTypeRepair, Status: domain.StatusScheduled},
		{ID: 12, TechnicianID: 1, StartAt: at("2025-12-11", 11, 0), DurationMinutes: 120, JobType: domain.JobTypeRepair, Status: domain.StatusScheduled},
	}
	svc := f.service(at("2025-12-01", 8, 0))

	res, err := svc.ValidateTimeSlotAvailability(context.Background(), SlotRequest{
		TechnicianID:    1,
		Start:           at(day, 11, 0),
		DurationMinutes: 60,
		JobType:         domain.JobTypeMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RequiredSlots)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, int64(10), res.Warnings[0].AppointmentID)

	_, err = svc.ValidateTimeSlotAvailability(context.Background(), SlotRequest{
		TechnicianID:    2,
		Start:           at(day, 11, 0),
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	_, err = svc.ValidateTimeSlotAvailability(context.Background(), SlotRequest{
		TechnicianID:         2,
		Start:                at(day, 11, 0),
		DurationMinutes:      60,
		ExcludeAppointmentID: 11,
	})
	assert.NoError(t, err)

	_, err = svc.ValidateTimeSlotAvailability(context.Background(), SlotRequest{
		TechnicianID:    2,
		Start:           at(day, 15, 0),
		DurationMinutes: 120,
		JobType:         domain.JobTypeInstallation,
	})
	assert.ErrorIs(t, err, ErrInstallationStart)
	assert.Contains(t, err.Error(), "installations start at 9/11/13")

	res, err = svc.ValidateTimeSlotAvailability(context.Background(), SlotRequest{
		TechnicianID:    2,
		Start:           at(day, 15, 0),
		DurationMinutes: 180,
		JobType:         domain.JobTypeRepair,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.RequiredSlots)
}
