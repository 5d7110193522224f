package cellar

import "errors"

var (
	ErrCellarNotFound = errors.New("cellar.repository: cellar not found")
	ErrBuildQuery     = errors.New("cellar.repository: failed to build query")
	ErrScanRow        = errors.New("cellar.repository: failed to scan row")
)
