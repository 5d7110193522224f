package update_employee_schedule

import (
	"context"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	"github.com/m04kA/SMC-ServiceScheduler/internal/service/schedules/models"
)

type ScheduleService interface {
	UpdateEmployeeSchedule(ctx context.Context, employeeID int64, week domain.WeeklySchedule) (*models.WeeklySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
