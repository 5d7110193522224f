package domain

import (
	"strings"
	"time"
)

// Appointment represents a booked field-service job
type Appointment struct {
	ID              int64
	TechnicianID    int64
	CustomerID      int64
	CellarID        *int64
	JobName         string
	JobType         JobType
	DurationMinutes int
	StartAt         time.Time
	Address         AddressKey
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the end of the half-open interval [StartAt, EndAt)
func (a *Appointment) EndAt(durationMinutes int) time.Time {
	return a.StartAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// BlocksTechnician returns true if the appointment holds the technician's time.
// Completed jobs free the slot (reports are produced against them), cancelled ones never block.
func (a *Appointment) BlocksTechnician() bool {
	return a.Status == StatusScheduled
}

// IsQuotation returns true if the appointment is a quotation visit
func (a *Appointment) IsQuotation() bool {
	return a.JobType == JobTypeQuotation
}

// AddressKey identity of a physical service location for duplicate detection
type AddressKey struct {
	Street     string
	City       string
	Province   string
	PostalCode string
}

// Normalize returns the key with whitespace and case normalised so that
// "h3b1b1" and "H3B 1B1" compare equal
func (k AddressKey) Normalize() AddressKey {
	return AddressKey{
		Street:     strings.ToLower(collapseSpaces(k.Street)),
		City:       strings.ToLower(collapseSpaces(k.City)),
		Province:   strings.ToLower(strings.TrimSpace(k.Province)),
		PostalCode: strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(k.PostalCode), " ", "")),
	}
}

// Equal compares two keys after normalisation.
// Province is implied by the postal code and spelled inconsistently ("QC", "Quebec"), so it is ignored.
func (k AddressKey) Equal(other AddressKey) bool {
	a, b := k.Normalize(), other.Normalize()
	return a.Street == b.Street && a.City == b.City && a.PostalCode == b.PostalCode
}

// IsEmpty returns true if no component is set
func (k AddressKey) IsEmpty() bool {
	n := k.Normalize()
	return n.Street == "" && n.City == "" && n.PostalCode == ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
