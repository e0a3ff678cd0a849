package billing

import "errors"

var (
	// ErrInvalidTimeRange is returned when a time entry ends at or
	// before it starts.
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrInvalidTransition is returned for a status change the state
	// machine does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvoiceLocked is returned when mutating line items of an
	// invoice that is no longer in draft.
	ErrInvoiceLocked = errors.New("invoice is not editable once sent")
)
