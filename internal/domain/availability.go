package domain

import "time"

// AvailabilityEntry one slot of an employee's availability calendar.
// Either DayOfWeek (weekly recurring) or SpecificDate (override) is set.
type AvailabilityEntry struct {
	ID           int64
	EmployeeID   int64
	DayOfWeek    *WeekDay
	SpecificDate *time.Time
	TimeSlot     TimeSlot
	CreatedAt    time.Time
}

// IsOverride returns true for a date-specific entry
func (e *AvailabilityEntry) IsOverride() bool {
	return e.SpecificDate != nil
}

// DaySchedule the slots of one weekday in a weekly submission
type DaySchedule struct {
	DayOfWeek WeekDay
	TimeSlots []TimeSlot
}

// WeeklySchedule a full-week submission, one entry per working day
type WeeklySchedule struct {
	Days []DaySchedule
}

// Entries flattens the week into weekly availability entries for employeeID
func (w WeeklySchedule) Entries(employeeID int64) []*AvailabilityEntry {
	entries := make([]*AvailabilityEntry, 0)
	for _, day := range w.Days {
		d := day.DayOfWeek
		for _, slot := range day.TimeSlots {
			entries = append(entries, &AvailabilityEntry{
				EmployeeID: employeeID,
				DayOfWeek:  &d,
				TimeSlot:   slot,
			})
		}
	}
	return entries
}

// GroupWeekly groups weekly entries per working day, in calendar order.
// Days without entries are returned with an empty slot list.
func GroupWeekly(entries []*AvailabilityEntry, grid SlotGrid) WeeklySchedule {
	byDay := make(map[WeekDay]map[TimeSlot]bool)
	for _, e := range entries {
		if e.DayOfWeek == nil {
			continue
		}
		if byDay[*e.DayOfWeek] == nil {
			byDay[*e.DayOfWeek] = make(map[TimeSlot]bool)
		}
		byDay[*e.DayOfWeek][e.TimeSlot] = true
	}

	week := WeeklySchedule{Days: make([]DaySchedule, 0, len(WorkingDays))}
	for _, d := range WorkingDays {
		day := DaySchedule{DayOfWeek: d, TimeSlots: []TimeSlot{}}
		for _, anchor := range grid.Anchors {
			if byDay[d][anchor] {
				day.TimeSlots = append(day.TimeSlots, anchor)
			}
		}
		week.Days = append(week.Days, day)
	}
	return week
}

// SlotSet builds a lookup set from entries
func SlotSet(entries []*AvailabilityEntry) map[TimeSlot]bool {
	set := make(map[TimeSlot]bool, len(entries))
	for _, e := range entries {
		set[e.TimeSlot] = true
	}
	return set
}
