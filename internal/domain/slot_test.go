package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotGrid_RequiredSlots(t *testing.T) {
	grid := DefaultSlotGrid()

	assert.Equal(t, 0, grid.RequiredSlots(0))
	assert.Equal(t, 1, grid.RequiredSlots(30))
	assert.Equal(t, 1, grid.RequiredSlots(120))
	assert.Equal(t, 2, grid.RequiredSlots(121))
	assert.Equal(t, 2, grid.RequiredSlots(240))
	assert.Equal(t, 3, grid.RequiredSlots(241))

	prev := 0
	for d := 0; d <= 600; d++ {
		got := grid.RequiredSlots(d)
		require.GreaterOrEqual(t, got, prev, "not monotone at %d", d)
		prev = got
	}
}

func TestSlotGrid_SlotIndexAndFits(t *testing.T) {
	grid := DefaultSlotGrid()

	assert.Equal(t, 0, grid.SlotIndex(9))
	assert.Equal(t, 4, grid.SlotIndex(17))
	assert.Equal(t, -1, grid.SlotIndex(10))
	assert.Equal(t, -1, grid.SlotIndex(19))

	assert.True(t, grid.FitsRemainingDay(0, 5))
	assert.True(t, grid.FitsRemainingDay(3, 2))
	assert.False(t, grid.FitsRemainingDay(4, 2))
	assert.False(t, grid.FitsRemainingDay(-1, 1))
}

func TestSlotGrid_IsBookableAnchor(t *testing.T) {
	grid := DefaultSlotGrid()
	day := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	for _, h := range []int{9, 11, 13, 15} {
		assert.True(t, grid.IsBookableAnchor(day.Add(time.Duration(h)*time.Hour)), "hour %d", h)
	}
	assert.False(t, grid.IsBookableAnchor(day.Add(17*time.Hour)))
	assert.False(t, grid.IsBookableAnchor(day.Add(10*time.Hour)))
	assert.False(t, grid.IsBookableAnchor(day.Add(9*time.Hour+15*time.Minute)))
}

func TestSlotGrid_AllowsStart(t *testing.T) {
	grid := DefaultSlotGrid()
	day := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	for _, h := range []int{9, 11, 13} {
		assert.True(t, grid.AllowsStart(JobTypeInstallation, day.Add(time.Duration(h)*time.Hour)), "hour %d", h)
	}
	assert.False(t, grid.AllowsStart(JobTypeInstallation, day.Add(15*time.Hour)))
	assert.False(t, grid.AllowsStart(JobTypeInstallation, day.Add(17*time.Hour)))

	assert.True(t, grid.AllowsStart(JobTypeRepair, day.Add(15*time.Hour)))
	assert.False(t, grid.AllowsStart(JobTypeRepair, day.Add(17*time.Hour)))
	assert.False(t, grid.AllowsStart(JobTypeQuotation, day.Add(9*time.Hour+30*time.Minute)))
}

func TestSlotGrid_DefaultDurations(t *testing.T) {
	grid := DefaultSlotGrid()

	assert.Equal(t, 30, grid.DefaultDuration(JobTypeQuotation))
	assert.Equal(t, 60, grid.DefaultDuration(JobTypeMaintenance))
	assert.Equal(t, 90, grid.DefaultDuration(JobTypeRepair))
	assert.Equal(t, 240, grid.DefaultDuration(JobTypeInstallation))
	assert.Equal(t, 45, grid.ResolveDuration(45, JobTypeInstallation))
	assert.Equal(t, 240, grid.ResolveDuration(0, JobTypeInstallation))
}

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		raw  string
		want TimeSlot
		ok   bool
	}{
		{"NINE_AM", SlotNineAM, true},
		{"eleven_am", SlotElevenAM, true},
		{"13:00", SlotOnePM, true},
		{" 17:00 ", SlotFivePM, true},
		{"10:00", "", false},
		{"09:30", "", false},
		{"noon", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTimeSlot(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
	assert.Equal(t, "15:00", SlotThreePM.String())
}

func TestWeekDayOf(t *testing.T) {
	d, ok := WeekDayOf(time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, Tuesday, d)

	_, ok = WeekDayOf(time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "saturday")
	_, ok = WeekDayOf(time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "sunday")
}

func TestGroupWeekly(t *testing.T) {
	week := WeeklySchedule{Days: []DaySchedule{
		{DayOfWeek: Wednesday, TimeSlots: []TimeSlot{SlotThreePM, SlotNineAM}},
		{DayOfWeek: Monday, TimeSlots: []TimeSlot{SlotElevenAM}},
	}}

	grouped := GroupWeekly(week.Entries(7), DefaultSlotGrid())

	require.Len(t, grouped.Days, 5)
	assert.Equal(t, Monday, grouped.Days[0].DayOfWeek)
	assert.Equal(t, []TimeSlot{SlotElevenAM}, grouped.Days[0].TimeSlots)
	assert.Empty(t, grouped.Days[1].TimeSlots)
	assert.Equal(t, []TimeSlot{SlotNineAM, SlotThreePM}, grouped.Days[2].TimeSlots)
}

func TestAddressKey_Equal(t *testing.T) {
	a := AddressKey{Street: "10  Main St", City: "Ottawa", Province: "ON", PostalCode: "K1A 0B1"}
	b := AddressKey{Street: "10 main st", City: "OTTAWA", Province: "Ontario", PostalCode: "k1a0b1"}
	c := AddressKey{Street: "12 Main St", City: "Ottawa", Province: "ON", PostalCode: "K1A 0B1"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.IsEmpty())
	assert.True(t, AddressKey{}.IsEmpty())
}
