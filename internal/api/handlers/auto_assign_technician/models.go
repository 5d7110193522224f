package auto_assign_technician

import (
	"fmt"
	"time"

	autoAssign "github.com/m04kA/SMC-ServiceScheduler/internal/usecase/auto_assign_technician"
)

// AutoAssignRequest HTTP request model
type AutoAssignRequest struct {
	Start           string `json:"start" validate:"required"` // RFC3339
	JobName         string `json:"jobName" validate:"required"`
	DurationMinutes int    `json:"durationMinutes,omitempty" validate:"gte=0"`
}

// AutoAssignResponse HTTP response model
type AutoAssignResponse struct {
	TechnicianID    int64    `json:"technicianId"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Start           string   `json:"start"`
	JobType         string   `json:"jobType"`
	DurationMinutes int      `json:"durationMinutes"`
	RequiredSlots   int      `json:"requiredSlots"`
	Warnings        []string `json:"warnings"`
}

func (r *AutoAssignRequest) ToUseCaseRequest() (*autoAssign.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start must be RFC3339: %w", err)
	}
	return &autoAssign.Request{
		Start:           start,
		JobName:         r.JobName,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

func FromUseCaseResponse(resp *autoAssign.Response) *AutoAssignResponse {
	return &AutoAssignResponse{
		TechnicianID:    resp.TechnicianID,
		FirstName:       resp.FirstName,
		LastName:        resp.LastName,
		Start:           resp.Start.Format(time.RFC3339),
		JobType:         string(resp.JobType),
		DurationMinutes: resp.DurationMinutes,
		RequiredSlots:   resp.RequiredSlots,
		Warnings:        resp.Warnings,
	}
}
