package get_date_schedule

import (
	"context"

	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

type ScheduleService interface {
	GetEmployeeScheduleForDate(ctx context.Context, employeeID int64, rawDate string) (*models.DateSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
