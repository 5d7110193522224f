package auto_assign_technician

import (
	"context"

	autoAssign "github.com/m04kA/SMC-ServiceScheduler/internal/usecase/auto_assign_technician"
)

type AutoAssignUseCase interface {
	Execute(ctx context.Context, req *autoAssign.Request) (*autoAssign.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
