package appointment

import "errors"

var (
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")
	ErrExecQuery  = errors.New("appointment.repository: failed to execute query")
	ErrScanRow    = errors.New("appointment.repository: failed to scan row")
)
