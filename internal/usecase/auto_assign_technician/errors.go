package auto_assign_technician

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

var (
	// ErrInvalidInput missing job name or start time
	ErrInvalidInput = fmt.Errorf("auto_assign_technician: %w: invalid input data", domain.ErrMissingData)

	// ErrJobNotFound the job name is not in the active catalog
	ErrJobNotFound = fmt.Errorf("auto_assign_technician: %w: job not found", domain.ErrNotFound)

	// ErrNoTechnicianAvailable nobody can take the job; changing the request is the only way forward
	ErrNoTechnicianAvailable = fmt.Errorf("auto_assign_technician: %w", domain.ErrNoTechnicianAvailable)

	ErrInternal = errors.New("auto_assign_technician: internal error")
)
