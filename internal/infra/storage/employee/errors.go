package employee

import "errors"

var (
	// ErrEmployeeNotFound no employee with the given id
	ErrEmployeeNotFound = errors.New("employee.repository: employee not found")

	ErrBuildQuery = errors.New("employee.repository: failed to build query")
	ErrExecQuery  = errors.New("employee.repository: failed to execute query")
	ErrScanRow    = errors.New("employee.repository: failed to scan row")
)
