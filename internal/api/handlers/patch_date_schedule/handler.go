package patch_date_schedule

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

// Handle PATCH /api/v1/employees/{employeeId}/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("PATCH /employees/{id}/schedule/{date} - Invalid employee ID: %q", vars["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}
	date := vars["date"]

	var req PatchDateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /employees/{id}/schedule/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	result, err := h.service.PatchDateSchedule(r.Context(), employeeID, req.ToServiceRequest(date))
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /employees/{id}/schedule/{date} - Failed: employee_id=%d, date=%s, error=%v", employeeID, date, err)
		} else {
			h.logger.Warn("PATCH /employees/{id}/schedule/{date} - %d: employee_id=%d, date=%s, %v", status, employeeID, date, err)
		}
		return
	}

	h.logger.Info("PATCH /employees/{id}/schedule/{date} - Override set: employee_id=%d, date=%s, slots=%v", employeeID, date, result.TimeSlots)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDate(result))
}
