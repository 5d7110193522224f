package models

import (
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/matcher"
)

// WeeklySchedule an employee's recurring week
type WeeklySchedule struct {
	EmployeeID int64
	Days       []domain.DaySchedule
}

// DateSchedule effective slots of one date
type DateSchedule struct {
	EmployeeID int64
	Date       time.Time
	DayOfWeek  domain.WeekDay
	TimeSlots  []domain.TimeSlot
	Override   bool
}

// PatchDateRequest replaces the slots of one calendar date
type PatchDateRequest struct {
	Date      string
	DayOfWeek string
	TimeSlots []domain.TimeSlot
}

func FromWeekly(employeeID int64, week domain.WeeklySchedule) *WeeklySchedule {
	return &WeeklySchedule{EmployeeID: employeeID, Days: week.Days}
}

func FromEffective(employeeID int64, eff *matcher.Effective) *DateSchedule {
	return &DateSchedule{
		EmployeeID: employeeID,
		Date:       eff.Date,
		DayOfWeek:  eff.DayOfWeek,
		TimeSlots:  eff.TimeSlots,
		Override:   eff.Override,
	}
}
