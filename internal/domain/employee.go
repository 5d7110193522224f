package domain

import (
	"strings"
	"time"
)

// Employee represents a staff member whose availability is managed here
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTechnician returns true if the employee does field work
func (e *Employee) IsTechnician() bool {
	return IsTechnicianRole(e.Role)
}

// IsTechnicianRole compares an opaque role string with the technician capability
func IsTechnicianRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), RoleTechnician)
}

// Job catalog entry
type Job struct {
	ID                     int64
	Name                   string
	Type                   JobType
	DefaultDurationMinutes int
	HourlyRate             float64
	IsActive               bool
}

// ParseJobType parses a case-insensitive job type name
func ParseJobType(raw string) (JobType, bool) {
	jt := JobType(strings.ToUpper(strings.TrimSpace(raw)))
	switch jt {
	case JobTypeQuotation, JobTypeMaintenance, JobTypeRepair, JobTypeInstallation:
		return jt, true
	default:
		return "", false
	}
}

// Cellar a customer's wine cellar or refrigeration unit
type Cellar struct {
	ID        int64
	OwnerID   int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
