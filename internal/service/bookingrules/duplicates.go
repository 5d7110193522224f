package bookingrules

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceScheduler/internal/domain"
)

// ValidateDuplicateAddressAndDay rejects a booking when any SCHEDULED appointment
// already exists at the same address on the same day. excludeID skips the edited appointment.
//
// This is the strict one-visit-per-address-per-day policy. Booking validation in this
// service applies ValidateDuplicateQuotation instead; this check is part of the rule
// surface offered to the booking orchestrator and is not called from any path here.
func (s *Service) ValidateDuplicateAddressAndDay(ctx context.Context, address domain.AddressKey, date time.Time, excludeID int64) error {
	from, to := s.dayBounds(date)
	existing, err := s.appointments.GetByAddressAndDate(ctx, address, from, to, domain.BlockingStatuses)
	if err != nil {
		s.logger.Error("ValidateDuplicateAddressAndDay: repository error: %v", err)
		return fmt.Errorf("%w: ValidateDuplicateAddressAndDay - repository error: %v", ErrInternal, err)
	}

	if dup := findSameAddress(existing, address, excludeID); dup != nil {
		return fmt.Errorf("%w: appointment %d on %s", ErrDuplicateAddressDay, dup.ID, from.Format(domain.DateFormat))
	}
	return nil
}

// ValidateDuplicateQuotation rejects a second quotation at the same address and day,
// whoever the customer is. SCHEDULED and COMPLETED quotations block, CANCELLED do not.
// Other job types are never restricted here.
func (s *Service) ValidateDuplicateQuotation(
	ctx context.Context,
	jobType domain.JobType,
	address domain.AddressKey,
	date time.Time,
	excludeID int64,
) error {
	if jobType != domain.JobTypeQuotation {
		return nil
	}

	from, to := s.dayBounds(date)
	existing, err := s.appointments.GetByJobTypeAddressAndDate(ctx, domain.JobTypeQuotation, address, from, to, domain.QuotationBlockingStatuses)
	if err != nil {
		s.logger.Error("ValidateDuplicateQuotation: repository error: %v", err)
		return fmt.Errorf("%w: ValidateDuplicateQuotation - repository error: %v", ErrInternal, err)
	}

	if dup := findSameAddress(existing, address, excludeID); dup != nil {
		return fmt.Errorf("%w: quotation %d (%s) on %s", ErrDuplicateQuotation, dup.ID, dup.Status, from.Format(domain.DateFormat))
	}
	return nil
}

func findSameAddress(existing []*domain.Appointment, address domain.AddressKey, excludeID int64) *domain.Appointment {
	for _, a := range existing {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if a.Address.Equal(address) {
			return a
		}
	}
	return nil
}
