package patch_date_schedule

import (
	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

// PatchDateScheduleRequest HTTP request model
type PatchDateScheduleRequest struct {
	DayOfWeek string   `json:"dayOfWeek" validate:"required"`
	TimeSlots []string `json:"timeSlots" validate:"required"`
}

// ToServiceRequest the date comes from the path
func (r *PatchDateScheduleRequest) ToServiceRequest(date string) models.PatchDateRequest {
	return models.PatchDateRequest{
		Date:      date,
		DayOfWeek: r.DayOfWeek,
		TimeSlots: handlers.ParseTimeSlots(r.TimeSlots),
	}
}
