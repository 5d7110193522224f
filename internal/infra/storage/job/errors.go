package job

import "errors"

var (
	// ErrJobNotFound no catalog entry with the given name
	ErrJobNotFound = errors.New("job.repository: job not found")

	ErrBuildQuery = errors.New("job.repository: failed to build query")
	ErrScanRow    = errors.New("job.repository: failed to scan row")
)
