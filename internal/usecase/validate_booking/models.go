package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// Request an appointment the orchestrator is about to create or reschedule
type Request struct {
	TechnicianID    int64
	CustomerID      int64
	Role            string // role of the caller, opaque
	CellarID        *int64
	JobName         string
	DurationMinutes int // 0 = catalog default
	Start           time.Time
	Address         domain.AddressKey

	// ExcludeAppointmentID the appointment being rescheduled, 0 for a new booking
	ExcludeAppointmentID int64
}

// Response the booking may be persisted; warnings do not block it
type Response struct {
	JobType         domain.JobType
	DurationMinutes int
	RequiredSlots   int
	Deadline        time.Time
	Warnings        []string
}
