package get_employee_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
)

const msgInvalidEmployeeID = "invalid employee id"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /employees/{id}/schedule - Invalid employee ID: %q", mux.Vars(r)["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	result, err := h.service.GetEmployeeSchedule(r.Context(), employeeID)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /employees/{id}/schedule - Failed to get schedule: employee_id=%d, error=%v", employeeID, err)
		} else {
			h.logger.Warn("GET /employees/{id}/schedule - %d: employee_id=%d, %v", status, employeeID, err)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/schedule - Schedule retrieved: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromWeekly(result))
}
