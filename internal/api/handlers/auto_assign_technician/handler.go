package auto_assign_technician

import (
	"net/http"

	"github.com/m04kA/SMC-ServiceScheduler/internal/api/handlers"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase AutoAssignUseCase
	logger  Logger
}

func NewHandler(useCase AutoAssignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/auto-assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AutoAssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/auto-assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/auto-assign - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /appointments/auto-assign - Failed: job=%q, error=%v", req.JobName, err)
		} else {
			h.logger.Warn("POST /appointments/auto-assign - %d: job=%q, %v", status, req.JobName, err)
		}
		return
	}

	h.logger.Info("POST /appointments/auto-assign - Assigned technician_id=%d, job=%q", result.TechnicianID, req.JobName)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
