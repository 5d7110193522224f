package domain

import "errors"

// Error classes. Package-level sentinels wrap one of these so that callers can
// branch on the class with errors.Is without knowing every concrete rule.
var (
	// ErrMissingData malformed or incomplete input (bad date, invalid timeslot, wrong day count)
	ErrMissingData = errors.New("missing or invalid data")

	// ErrRuleViolation the request is well-formed but breaks a business rule
	ErrRuleViolation = errors.New("business rule violation")

	// ErrTimeConflict the requested time range overlaps an existing booking
	ErrTimeConflict = errors.New("time conflict")

	// ErrNotFound a referenced employee, appointment, job or cellar does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists the resource being created already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrConflict the change would orphan or contradict existing data
	ErrConflict = errors.New("conflict with existing data")

	// ErrNoTechnicianAvailable no technician can take the requested job; not retryable
	ErrNoTechnicianAvailable = errors.New("no technician available")
)
