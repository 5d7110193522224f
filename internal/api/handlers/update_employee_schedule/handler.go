package update_employee_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
)

const (
	msgInvalidEmployeeID  = "invalid employee id"
	msgInvalidRequestBody = "invalid request body"
)

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

// Handle PUT /api/v1/employees/{employeeId}/schedule
// Replaces the whole week; 409 if a removed slot still carries a scheduled appointment.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("PUT /employees/{id}/schedule - Invalid employee ID: %q", mux.Vars(r)["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req handlers.WeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	result, err := h.service.UpdateEmployeeSchedule(r.Context(), employeeID, req.ToDomain())
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("PUT /employees/{id}/schedule - Failed to update schedule: employee_id=%d, error=%v", employeeID, err)
		} else {
			h.logger.Warn("PUT /employees/{id}/schedule - %d: employee_id=%d, %v", status, employeeID, err)
		}
		return
	}

	h.logger.Info("PUT /employees/{id}/schedule - Schedule replaced: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromWeekly(result))
}
