package handlers

import (
	"strings"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

// DaySchedule JSON form of one weekday
type DaySchedule struct {
	DayOfWeek string   `json:"dayOfWeek" validate:"required"`
	TimeSlots []string `json:"timeSlots" validate:"required"`
}

// WeeklyScheduleRequest body of POST and PUT /employees/{employeeId}/schedule
type WeeklyScheduleRequest struct {
	Days []DaySchedule `json:"days" validate:"required,dive"`
}

// WeeklyScheduleResponse an employee's recurring week
type WeeklyScheduleResponse struct {
	EmployeeID int64         `json:"employeeId"`
	Days       []DaySchedule `json:"days"`
}

// DateScheduleResponse effective slots of one date
type DateScheduleResponse struct {
	EmployeeID int64    `json:"employeeId"`
	Date       string   `json:"date"`
	DayOfWeek  string   `json:"dayOfWeek"`
	TimeSlots  []string `json:"timeSlots"`
	Override   bool     `json:"override"`
}

// ToDomain converts the body. Unknown day or slot names are passed through
// unchanged so that the rules engine reports them with the offending day.
func (r *WeeklyScheduleRequest) ToDomain() domain.WeeklySchedule {
	week := domain.WeeklySchedule{Days: make([]domain.DaySchedule, 0, len(r.Days))}
	for _, d := range r.Days {
		day, ok := domain.ParseWeekDay(d.DayOfWeek)
		if !ok {
			day = domain.WeekDay(strings.ToUpper(strings.TrimSpace(d.DayOfWeek)))
		}
		week.Days = append(week.Days, domain.DaySchedule{DayOfWeek: day, TimeSlots: ParseTimeSlots(d.TimeSlots)})
	}
	return week
}

// ParseTimeSlots accepts "NINE_AM" or "09:00" forms
func ParseTimeSlots(raw []string) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(raw))
	for _, s := range raw {
		slot, ok := domain.ParseTimeSlot(s)
		if !ok {
			slot = domain.TimeSlot(s)
		}
		slots = append(slots, slot)
	}
	return slots
}

func FromWeekly(s *models.WeeklySchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{EmployeeID: s.EmployeeID, Days: make([]DaySchedule, 0, len(s.Days))}
	for _, d := range s.Days {
		resp.Days = append(resp.Days, DaySchedule{DayOfWeek: string(d.DayOfWeek), TimeSlots: slotNames(d.TimeSlots)})
	}
	return resp
}

func FromDate(s *models.DateSchedule) *DateScheduleResponse {
	return &DateScheduleResponse{
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format(domain.DateFormat),
		DayOfWeek:  string(s.DayOfWeek),
		TimeSlots:  slotNames(s.TimeSlots),
		Override:   s.Override,
	}
}

func slotNames(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, string(s))
	}
	return out
}
