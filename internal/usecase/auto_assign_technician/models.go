package auto_assign_technician

import (
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// Request desired start and job of the appointment to staff
type Request struct {
	Start           time.Time
	JobName         string
	DurationMinutes int // 0 = catalog default
}

// Response the first technician able to take the job
type Response struct {
	TechnicianID    int64
	FirstName       string
	LastName        string
	Start           time.Time
	JobType         domain.JobType
	DurationMinutes int
	RequiredSlots   int
	Warnings        []string
}
