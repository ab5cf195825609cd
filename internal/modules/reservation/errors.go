package reservation

import "errors"

var (
	ErrValidation                 = errors.New("validation error")
	ErrNotFound                   = errors.New("reservation not found")
	ErrPropertyNotFound           = errors.New("property not found")
	ErrPropertyUnassigned         = errors.New("property has no assigned agent")
	ErrDuplicateActiveReservation = errors.New("active reservation already exists for this customer and property")
	ErrInvalidTransition          = errors.New("invalid status transition")
	ErrMissingRejectionReason     = errors.New("rejection reason is required")
	ErrNoUnitsAvailable           = errors.New("no units available")
	ErrUnauthorized               = errors.New("reservation belongs to another customer")
	ErrCannotDeletePending        = errors.New("pending reservations cannot be deleted")
	ErrForbidden                  = errors.New("operation not allowed for this actor")
)
