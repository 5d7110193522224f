package validate_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceScheduler/internal/api/middleware"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/validate
// 200 when the appointment may be persisted, the class status of the first broken rule otherwise.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.RoleFromContext(r.Context()))
	if err != nil {
		h.logger.Warn("POST /appointments/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /appointments/validate - Failed: technician_id=%d, error=%v", req.TechnicianID, err)
		} else {
			h.logger.Warn("POST /appointments/validate - %d: technician_id=%d, %v", status, req.TechnicianID, err)
		}
		return
	}

	h.logger.Info("POST /appointments/validate - Accepted: technician_id=%d, customer_id=%d, warnings=%d",
		req.TechnicianID, req.CustomerID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
