package bookingrules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

func TestBookingDeadline(t *testing.T) {
	grid := domain.DefaultSlotGrid()

	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"09:00 closes the previous evening", at("2025-12-10", 9, 0), at("2025-12-09", 17, 0)},
		{"11:00 closes the previous evening", at("2025-12-10", 11, 0), at("2025-12-09", 17, 0)},
		{"13:00 closes the same morning", at("2025-12-10", 13, 0), at("2025-12-10", 9, 0)},
		{"15:00 closes the same morning", at("2025-12-10", 15, 0), at("2025-12-10", 9, 0)},
		{"17:00 closes the same morning", at("2025-12-10", 17, 0), at("2025-12-10", 9, 0)},
		{"monday morning closes on sunday", at("2025-12-08", 9, 0), at("2025-12-07", 17, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(BookingDeadline(grid, tt.start)))
		})
	}
}

func TestValidateBookingDeadline(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		now     time.Time
		wantErr bool
	}{
		{"morning booked the day before", at("2025-12-10", 9, 0), at("2025-12-09", 16, 59), false},
		{"morning booked exactly at the deadline", at("2025-12-10", 11, 0), at("2025-12-09", 17, 0), false},
		{"morning booked after the prior evening", at("2025-12-10", 9, 0), at("2025-12-09", 17, 1), true},
		{"morning booked the same day", at("2025-12-10", 11, 0), at("2025-12-10", 7, 0), true},
		{"afternoon booked early the same day", at("2025-12-10", 13, 0), at("2025-12-10", 8, 30), false},
		{"afternoon booked after nine", at("2025-12-10", 15, 0), at("2025-12-10", 9, 1), true},
		{"afternoon booked a week ahead", at("2025-12-10", 13, 0), at("2025-12-03", 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFixture().service(tt.now)

			err := svc.ValidateBookingDeadline(tt.start)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDeadlinePassed)
				assert.ErrorIs(t, err, domain.ErrRuleViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateBookingDeadline_TimezoneOfGrid(t *testing.T) {
	toronto, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Skip("tzdata not available")
	}
	grid := domain.DefaultSlotGrid()
	grid.Location = toronto

	// 09:00 Toronto on 2025-12-10 is 14:00 UTC; the deadline is 17:00 Toronto the day before
	start := time.Date(2025, 12, 10, 9, 0, 0, 0, toronto)
	deadline := BookingDeadline(grid, start)

	assert.True(t, deadline.Equal(time.Date(2025, 12, 9, 22, 0, 0, 0, time.UTC)))
}
