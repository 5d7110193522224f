package get_date_schedule

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

// Handle GET /api/v1/employees/{employeeId}/schedule/{date}
// The date is validated by the service so that malformed dates and weekends share one message.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /employees/{id}/schedule/{date} - Invalid employee ID: %q", vars["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}
	date := vars["date"]

	result, err := h.service.GetEmployeeScheduleForDate(r.Context(), employeeID, date)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /employees/{id}/schedule/{date} - Failed: employee_id=%d, date=%s, error=%v", employeeID, date, err)
		} else {
			h.logger.Warn("GET /employees/{id}/schedule/{date} - %d: employee_id=%d, date=%s, %v", status, employeeID, date, err)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/schedule/{date} - employee_id=%d, date=%s, override=%t", employeeID, date, result.Override)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDate(result))
}
