package validate_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

var (
	// ErrInvalidInput a required field is missing
	ErrInvalidInput = fmt.Errorf("validate_booking: %w: invalid input data", domain.ErrMissingData)

	// ErrJobNotFound the job name is not in the active catalog
	ErrJobNotFound = fmt.Errorf("validate_booking: %w: job not found", domain.ErrNotFound)

	ErrInternal = errors.New("validate_booking: internal error")
)
