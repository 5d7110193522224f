package schedules

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// RuleSet role-specific limits on an employee's working slots
type RuleSet interface {
	Name() string
	// ValidateDay checks one day; slots are already deduplicated and in grid order
	ValidateDay(day domain.WeekDay, slots []domain.TimeSlot) error
	ValidateWeek(week domain.WeeklySchedule) error
}

// RulesFor picks the rule set by role capability
func RulesFor(role string, grid domain.SlotGrid) RuleSet {
	if domain.IsTechnicianRole(role) {
		return technicianRules{grid: grid}
	}
	return staffRules{grid: grid}
}

// technicianRules 1..4 slots a day, pairwise at least one slot width apart, no weekly cap
type technicianRules struct {
	grid domain.SlotGrid
}

func (r technicianRules) Name() string { return "technician" }

func (r technicianRules) ValidateDay(day domain.WeekDay, slots []domain.TimeSlot) error {
	if n := len(slots); n < domain.TechnicianMinSlotsPerDay || n > domain.TechnicianMaxSlotsPerDay {
		return fmt.Errorf("%w: %s: technician needs %d to %d slots, got %d",
			ErrInvalidSchedule, day, domain.TechnicianMinSlotsPerDay, domain.TechnicianMaxSlotsPerDay, n)
	}

	minGap := r.grid.SlotWidthMinutes
	for i := 1; i < len(slots); i++ {
		gap := (slots[i].Hour() - slots[i-1].Hour()) * 60
		if gap < minGap {
			return fmt.Errorf("%w: %s: slots %s and %s are less than %d minutes apart",
				ErrInvalidSchedule, day, slots[i-1], slots[i], minGap)
		}
	}
	return nil
}

func (r technicianRules) ValidateWeek(domain.WeeklySchedule) error {
	return nil
}

// staffRules exactly two slots bounding the shift: start at the first anchor,
// at most 8 hours a day and 40 hours a week
type staffRules struct {
	grid domain.SlotGrid
}

func (r staffRules) Name() string { return "staff" }

func (r staffRules) ValidateDay(day domain.WeekDay, slots []domain.TimeSlot) error {
	if len(slots) != domain.StaffSlotsPerDay {
		return fmt.Errorf("%w: %s: staff shift needs exactly %d slots (start and end), got %d",
			ErrInvalidSchedule, day, domain.StaffSlotsPerDay, len(slots))
	}

	start := r.grid.Anchors[0]
	if slots[0] != start {
		return fmt.Errorf("%w: %s: staff shift must start at %s, got %s", ErrInvalidSchedule, day, start, slots[0])
	}

	if hours := shiftHours(slots); hours > domain.StaffMaxDailyHours {
		return fmt.Errorf("%w: %s: shift of %d hours exceeds %d", ErrInvalidSchedule, day, hours, domain.StaffMaxDailyHours)
	}
	return nil
}

func (r staffRules) ValidateWeek(week domain.WeeklySchedule) error {
	total := 0
	for _, d := range week.Days {
		total += shiftHours(d.TimeSlots)
	}
	if total > domain.StaffMaxWeeklyHours {
		return fmt.Errorf("%w: weekly total of %d hours exceeds %d", ErrInvalidSchedule, total, domain.StaffMaxWeeklyHours)
	}
	return nil
}

func shiftHours(slots []domain.TimeSlot) int {
	if len(slots) < 2 {
		return 0
	}
	return slots[len(slots)-1].Hour() - slots[0].Hour()
}

// normalizeDay rejects empty days, unknown or off-grid slots and duplicates,
// and returns the slots in grid order
func normalizeDay(grid domain.SlotGrid, day domain.WeekDay, slots []domain.TimeSlot) ([]domain.TimeSlot, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: %s: no time slots", ErrInvalidSchedule, day)
	}

	seen := make(map[domain.TimeSlot]bool, len(slots))
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !s.IsValid() || grid.SlotIndex(s.Hour()) < 0 {
			return nil, fmt.Errorf("%w: %s: invalid time slot %q", ErrInvalidSchedule, day, string(s))
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: %s: duplicate time slot %s", ErrInvalidSchedule, day, s)
		}
		seen[s] = true
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Hour() < out[j].Hour() })
	return out, nil
}

// normalizeWeek requires exactly one entry per working day and validates each with rules
func normalizeWeek(grid domain.SlotGrid, rules RuleSet, week domain.WeeklySchedule) (domain.WeeklySchedule, error) {
	if len(week.Days) != len(domain.WorkingDays) {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: expected %d weekdays, got %d",
			ErrInvalidSchedule, len(domain.WorkingDays), len(week.Days))
	}

	byDay := make(map[domain.WeekDay][]domain.TimeSlot, len(week.Days))
	for _, d := range week.Days {
		if !d.DayOfWeek.IsValid() {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: invalid day of week %q", ErrInvalidSchedule, string(d.DayOfWeek))
		}
		if _, dup := byDay[d.DayOfWeek]; dup {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: %s listed twice", ErrInvalidSchedule, d.DayOfWeek)
		}
		slots, err := normalizeDay(grid, d.DayOfWeek, d.TimeSlots)
		if err != nil {
			return domain.WeeklySchedule{}, err
		}
		if err := rules.ValidateDay(d.DayOfWeek, slots); err != nil {
			return domain.WeeklySchedule{}, err
		}
		byDay[d.DayOfWeek] = slots
	}

	normalized := domain.WeeklySchedule{Days: make([]domain.DaySchedule, 0, len(domain.WorkingDays))}
	for _, d := range domain.WorkingDays {
		normalized.Days = append(normalized.Days, domain.DaySchedule{DayOfWeek: d, TimeSlots: byDay[d]})
	}

	if err := rules.ValidateWeek(normalized); err != nil {
		return domain.WeeklySchedule{}, err
	}
	return normalized, nil
}
