package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

type stubAvailabilityRepo struct {
	overrides map[string][]domain.TimeSlot
	weekly    map[domain.WeekDay][]domain.TimeSlot
	err       error
}

func (r *stubAvailabilityRepo) GetOverrides(_ context.Context, employeeID int64, date time.Time) ([]*domain.AvailabilityEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	d := date
	entries := make([]*domain.AvailabilityEntry, 0)
	for _, s := range r.overrides[date.Format(domain.DateFormat)] {
		entries = append(entries, &domain.AvailabilityEntry{EmployeeID: employeeID, SpecificDate: &d, TimeSlot: s})
	}
	return entries, nil
}

func (r *stubAvailabilityRepo) GetWeeklyByDay(_ context.Context, employeeID int64, day domain.WeekDay) ([]*domain.AvailabilityEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	entries := make([]*domain.AvailabilityEntry, 0)
	for _, s := range r.weekly[day] {
		d := day
		entries = append(entries, &domain.AvailabilityEntry{EmployeeID: employeeID, DayOfWeek: &d, TimeSlot: s})
	}
	return entries, nil
}

func date(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, raw)
	require.NoError(t, err)
	return d
}

func TestIsAvailable_OverrideReplacesWeekly(t *testing.T) {
	repo := &stubAvailabilityRepo{
		overrides: map[string][]domain.TimeSlot{"2025-12-09": {domain.SlotNineAM}},
		weekly:    map[domain.WeekDay][]domain.TimeSlot{domain.Tuesday: {domain.SlotElevenAM}},
	}
	svc := NewService(repo, domain.DefaultSlotGrid())
	ctx := context.Background()
	tuesday := date(t, "2025-12-09")

	ok, err := svc.IsAvailable(ctx, 7, tuesday, domain.SlotNineAM)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, 7, tuesday, domain.SlotElevenAM)
	require.NoError(t, err)
	assert.False(t, ok, "weekly slot must be ignored on an overridden date")

	// the following Tuesday has no override and falls back to the weekly calendar
	ok, err = svc.IsAvailable(ctx, 7, date(t, "2025-12-16"), domain.SlotElevenAM)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEffectiveSlots(t *testing.T) {
	repo := &stubAvailabilityRepo{
		weekly: map[domain.WeekDay][]domain.TimeSlot{
			domain.Monday: {domain.SlotThreePM, domain.SlotNineAM},
		},
	}
	svc := NewService(repo, domain.DefaultSlotGrid())

	t.Run("weekly slots in grid order", func(t *testing.T) {
		eff, err := svc.EffectiveSlots(context.Background(), 1, date(t, "2025-12-08"))
		require.NoError(t, err)
		assert.False(t, eff.Override)
		assert.Equal(t, domain.Monday, eff.DayOfWeek)
		assert.Equal(t, []domain.TimeSlot{domain.SlotNineAM, domain.SlotThreePM}, eff.TimeSlots)
	})

	t.Run("weekend is never available", func(t *testing.T) {
		eff, err := svc.EffectiveSlots(context.Background(), 1, date(t, "2025-12-13"))
		require.NoError(t, err)
		assert.Empty(t, eff.TimeSlots)

		ok, err := svc.IsAvailable(context.Background(), 1, date(t, "2025-12-14"), domain.SlotNineAM)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEffectiveSlots_RepositoryError(t *testing.T) {
	svc := NewService(&stubAvailabilityRepo{err: errors.New("boom")}, domain.DefaultSlotGrid())

	_, err := svc.EffectiveSlots(context.Background(), 1, date(t, "2025-12-08"))
	assert.ErrorIs(t, err, ErrInternal)
}
