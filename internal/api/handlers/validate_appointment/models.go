package validate_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
	validateBooking "github.com/m04kA/SMC-ServiceScheduler/internal/usecase/validate_booking"
)

// AddressRequest service location of the appointment
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

// ValidateAppointmentRequest HTTP request model
type ValidateAppointmentRequest struct {
	TechnicianID         int64          `json:"technicianId" validate:"required,gt=0"`
	CustomerID           int64          `json:"customerId" validate:"required,gt=0"`
	CellarID             *int64         `json:"cellarId,omitempty" validate:"omitempty,gt=0"`
	JobName              string         `json:"jobName" validate:"required"`
	DurationMinutes      int            `json:"durationMinutes,omitempty" validate:"gte=0"`
	Start                string         `json:"start" validate:"required"` // RFC3339
	Address              AddressRequest `json:"address"`
	ExcludeAppointmentID int64          `json:"excludeAppointmentId,omitempty" validate:"gte=0"`
}

// ValidateAppointmentResponse HTTP response model
type ValidateAppointmentResponse struct {
	Valid           bool     `json:"valid"`
	JobType         string   `json:"jobType"`
	DurationMinutes int      `json:"durationMinutes"`
	RequiredSlots   int      `json:"requiredSlots"`
	Deadline        string   `json:"deadline"`
	Warnings        []string `json:"warnings"`
}

// ToUseCaseRequest role comes from the authenticated caller
func (r *ValidateAppointmentRequest) ToUseCaseRequest(role string) (*validateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start must be RFC3339: %w", err)
	}

	return &validateBooking.Request{
		TechnicianID:    r.TechnicianID,
		CustomerID:      r.CustomerID,
		Role:            role,
		CellarID:        r.CellarID,
		JobName:         r.JobName,
		DurationMinutes: r.DurationMinutes,
		Start:           start,
		Address: domain.AddressKey{
			Street:     r.Address.Street,
			City:       r.Address.City,
			Province:   r.Address.Province,
			PostalCode: r.Address.PostalCode,
		},
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

func FromUseCaseResponse(resp *validateBooking.Response) *ValidateAppointmentResponse {
	return &ValidateAppointmentResponse{
		Valid:           true,
		JobType:         string(resp.JobType),
		DurationMinutes: resp.DurationMinutes,
		RequiredSlots:   resp.RequiredSlots,
		Deadline:        resp.Deadline.Format(time.RFC3339),
		Warnings:        resp.Warnings,
	}
}
