package patch_date_schedule

import (
	"context"

	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

type ScheduleService interface {
	PatchDateSchedule(ctx context.Context, employeeID int64, req models.PatchDateRequest) (*models.DateSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
