package reservation

import "nam3land/internal/domain"

// Actor is the server-verified identity performing a transition. It always
// comes from validated JWT claims, never from request bodies.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

// validTransition encodes the state machine:
// pending -> confirmed | cancelled, confirmed -> cancelled | completed,
// and any -> completed as an administrative close-out.
func validTransition(from, to domain.ReservationStatus) bool {
	if from == to {
		return false
	}
	switch {
	case to == domain.ReservationCompleted:
		return true
	case from == domain.ReservationPending &&
		(to == domain.ReservationConfirmed || to == domain.ReservationCancelled):
		return true
	case from == domain.ReservationConfirmed && to == domain.ReservationCancelled:
		return true
	default:
		return false
	}
}

// applyTransition is the whole decision logic of the lifecycle: given the
// current reservation and property rows (already locked by the caller), it
// either mutates both in place and reports whether the property changed, or
// returns a sentinel error and leaves everything untouched.
//
// Inventory rules, applied only when the property tracks units:
//   - into confirmed from a non-confirmed state: consume one unit; if none
//     remain the transition is rejected (never oversell);
//   - confirmed into cancelled: release one unit, never past the total;
//   - every other transition leaves inventory alone.
//
// After an adjustment the property status is recomputed: available while
// units remain, reserved otherwise.
func applyTransition(resv *domain.Reservation, prop *domain.Property, to domain.ReservationStatus, actor Actor, reason string) (bool, error) {
	from := resv.Status

	switch actor.Role {
	case domain.RoleAdmin:
		// full access
	case domain.RoleAgent:
		if resv.AgentID != actor.UserID {
			return false, ErrForbidden
		}
		if to == domain.ReservationCompleted {
			return false, ErrForbidden
		}
	case domain.RoleCustomer:
		if resv.CustomerID != actor.UserID {
			return false, ErrForbidden
		}
		if to != domain.ReservationCancelled {
			return false, ErrForbidden
		}
	default:
		return false, ErrForbidden
	}

	if !validTransition(from, to) {
		return false, ErrInvalidTransition
	}

	if to == domain.ReservationCancelled {
		// Agents and admins reject on behalf of the business and must say why.
		// A customer cancelling their own request does not need a reason.
		if actor.Role != domain.RoleCustomer && reason == "" {
			return false, ErrMissingRejectionReason
		}
		resv.RejectionReason = reason
	}

	propertyChanged := false
	if prop.TracksUnits() {
		total := *prop.UnitsTotal
		avail := total
		if prop.UnitsAvailable != nil {
			avail = *prop.UnitsAvailable
		}

		switch {
		case to == domain.ReservationConfirmed && from != domain.ReservationConfirmed:
			if avail <= 0 {
				return false, ErrNoUnitsAvailable
			}
			avail--
			propertyChanged = true
		case to == domain.ReservationCancelled && from == domain.ReservationConfirmed:
			if avail < total {
				avail++
				propertyChanged = true
			}
		}

		if propertyChanged {
			if avail < 0 {
				avail = 0
			}
			if avail > total {
				avail = total
			}
			prop.UnitsAvailable = &avail
			if avail > 0 {
				prop.Status = domain.PropertyAvailable
			} else {
				prop.Status = domain.PropertyReserved
			}
		}
	}

	resv.Status = to
	return propertyChanged, nil
}
