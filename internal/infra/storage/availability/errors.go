package availability

import "errors"

var (
	// ErrNotInTransaction the employee lock only makes sense inside a transaction
	ErrNotInTransaction = errors.New("availability.repository: lock requires a transaction")

	ErrBuildQuery = errors.New("availability.repository: failed to build query")
	ErrExecQuery  = errors.New("availability.repository: failed to execute query")
	ErrScanRow    = errors.New("availability.repository: failed to scan row")
)
