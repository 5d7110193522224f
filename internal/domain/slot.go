package domain

import (
	"strings"
	"time"
)

// TimeSlot one of the fixed daily anchors a job may start at
type TimeSlot string

const (
	SlotNineAM   TimeSlot = "NINE_AM"
	SlotElevenAM TimeSlot = "ELEVEN_AM"
	SlotOnePM    TimeSlot = "ONE_PM"
	SlotThreePM  TimeSlot = "THREE_PM"
	SlotFivePM   TimeSlot = "FIVE_PM"
)

var slotHours = map[TimeSlot]int{
	SlotNineAM:   9,
	SlotElevenAM: 11,
	SlotOnePM:    13,
	SlotThreePM:  15,
	SlotFivePM:   17,
}

// Hour returns the starting hour of the slot, or -1 for an unknown slot
func (s TimeSlot) Hour() int {
	h, ok := slotHours[s]
	if !ok {
		return -1
	}
	return h
}

// IsValid returns true if the slot is one of the known anchors
func (s TimeSlot) IsValid() bool {
	_, ok := slotHours[s]
	return ok
}

// String returns the slot as HH:MM
func (s TimeSlot) String() string {
	h := s.Hour()
	if h < 0 {
		return string(s)
	}
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format(TimeFormat)
}

// ParseTimeSlot accepts either the enum name ("NINE_AM") or the clock form ("09:00")
func ParseTimeSlot(raw string) (TimeSlot, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if s := TimeSlot(v); s.IsValid() {
		return s, true
	}
	t, err := time.Parse(TimeFormat, v)
	if err != nil || t.Minute() != 0 {
		return "", false
	}
	for slot, h := range slotHours {
		if h == t.Hour() {
			return slot, true
		}
	}
	return "", false
}

// WeekDay a working day of the week. Weekends are never schedulable.
type WeekDay string

const (
	Monday    WeekDay = "MONDAY"
	Tuesday   WeekDay = "TUESDAY"
	Wednesday WeekDay = "WEDNESDAY"
	Thursday  WeekDay = "THURSDAY"
	Friday    WeekDay = "FRIDAY"
)

// WorkingDays in calendar order
var WorkingDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayMapping = map[WeekDay]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
}

// IsValid returns true for Monday..Friday
func (d WeekDay) IsValid() bool {
	_, ok := weekdayMapping[d]
	return ok
}

// WeekDayOf returns the working day of a date; false for Saturday and Sunday
func WeekDayOf(date time.Time) (WeekDay, bool) {
	for d, wd := range weekdayMapping {
		if wd == date.Weekday() {
			return d, true
		}
	}
	return "", false
}

// ParseWeekDay parses a case-insensitive weekday name
func ParseWeekDay(raw string) (WeekDay, bool) {
	d := WeekDay(strings.ToUpper(strings.TrimSpace(raw)))
	return d, d.IsValid()
}

// SlotGrid the daily slot grid and the constants derived from it.
// It is built once from configuration and passed by value to every validator.
type SlotGrid struct {
	Anchors               []TimeSlot // ordered, index = ordinal
	BookableAnchors       []TimeSlot // anchors a technician appointment may start at
	InstallationAnchors   []TimeSlot // anchors an installation may start at
	SlotWidthMinutes      int
	BufferMinutes         int
	AfternoonFromHour     int
	MorningDeadlineHour   int
	AfternoonDeadlineHour int
	DefaultDurations      map[JobType]int
	Location              *time.Location
}

// DefaultSlotGrid returns the five-anchor grid used by the business
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		Anchors:               []TimeSlot{SlotNineAM, SlotElevenAM, SlotOnePM, SlotThreePM, SlotFivePM},
		BookableAnchors:       []TimeSlot{SlotNineAM, SlotElevenAM, SlotOnePM, SlotThreePM},
		InstallationAnchors:   []TimeSlot{SlotNineAM, SlotElevenAM, SlotOnePM},
		SlotWidthMinutes:      DefaultSlotWidthMinutes,
		BufferMinutes:         DefaultBufferMinutes,
		AfternoonFromHour:     DefaultAfternoonFromHour,
		MorningDeadlineHour:   DefaultMorningDeadlineHour,
		AfternoonDeadlineHour: DefaultAfternoonDeadlineHour,
		DefaultDurations: map[JobType]int{
			JobTypeQuotation:    DefaultQuotationMinutes,
			JobTypeMaintenance:  DefaultMaintenanceMinutes,
			JobTypeRepair:       DefaultRepairMinutes,
			JobTypeInstallation: DefaultInstallationMinutes,
		},
		Location: time.UTC,
	}
}

// SlotIndex returns the ordinal of the anchor starting at hour, or -1
func (g SlotGrid) SlotIndex(hour int) int {
	for i, s := range g.Anchors {
		if s.Hour() == hour {
			return i
		}
	}
	return -1
}

// SlotAt returns the anchor starting at hour
func (g SlotGrid) SlotAt(hour int) (TimeSlot, bool) {
	idx := g.SlotIndex(hour)
	if idx < 0 {
		return "", false
	}
	return g.Anchors[idx], true
}

// RequiredSlots number of grid slots a job of the given length occupies (ceil)
func (g SlotGrid) RequiredSlots(durationMinutes int) int {
	if durationMinutes <= 0 || g.SlotWidthMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.SlotWidthMinutes - 1) / g.SlotWidthMinutes
}

// FitsRemainingDay returns true if required slots starting at startIndex stay inside the grid
func (g SlotGrid) FitsRemainingDay(startIndex, requiredSlots int) bool {
	return startIndex >= 0 && startIndex+requiredSlots <= len(g.Anchors)
}

// DefaultDuration fallback duration for a job type, 0 if the type is unknown
func (g SlotGrid) DefaultDuration(jobType JobType) int {
	return g.DefaultDurations[jobType]
}

// ResolveDuration returns requested when positive, otherwise the job type default
func (g SlotGrid) ResolveDuration(requestedMinutes int, jobType JobType) int {
	if requestedMinutes > 0 {
		return requestedMinutes
	}
	return g.DefaultDuration(jobType)
}

// IsBookableAnchor returns true if a technician appointment may start at t
func (g SlotGrid) IsBookableAnchor(t time.Time) bool {
	return g.startsOn(g.BookableAnchors, t)
}

// AllowsStart returns true if a job of the given type may start at t.
// Installations are limited to InstallationAnchors, every other type to BookableAnchors.
func (g SlotGrid) AllowsStart(jobType JobType, t time.Time) bool {
	if jobType == JobTypeInstallation {
		return g.startsOn(g.InstallationAnchors, t)
	}
	return g.IsBookableAnchor(t)
}

func (g SlotGrid) startsOn(anchors []TimeSlot, t time.Time) bool {
	t = g.In(t)
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	for _, s := range anchors {
		if s.Hour() == t.Hour() {
			return true
		}
	}
	return false
}

// In converts t to the grid's timezone
func (g SlotGrid) In(t time.Time) time.Time {
	return t.In(g.location())
}

// DateOf returns midnight of t's calendar day in the grid's timezone
func (g SlotGrid) DateOf(t time.Time) time.Time {
	t = g.In(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.location())
}

// At returns the given clock hour on date's calendar day
func (g SlotGrid) At(date time.Time, hour int) time.Time {
	d := g.DateOf(date)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, g.location())
}

// ParseDate parses YYYY-MM-DD in the grid's timezone
func (g SlotGrid) ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(raw), g.location())
}

func (g SlotGrid) location() *time.Location {
	if g.Location == nil {
		return time.UTC
	}
	return g.Location
}
