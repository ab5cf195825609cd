package reservation

import (
	"testing"

	"nam3land/internal/domain"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func trackedProperty(total, available int) *domain.Property {
	return &domain.Property{
		ID:             7,
		Name:           "Green Valley Residence",
		Status:         domain.PropertyAvailable,
		UnitsTotal:     intPtr(total),
		UnitsAvailable: intPtr(available),
	}
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         42,
		CustomerID: 100,
		PropertyID: 7,
		AgentID:    200,
		Status:     domain.ReservationPending,
	}
}

var agentActor = Actor{UserID: 200, Role: domain.RoleAgent}
var adminActor = Actor{UserID: 1, Role: domain.RoleAdmin}

func TestApplyTransition_ConfirmConsumesLastUnit(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(1, 1)

	changed, err := applyTransition(resv, prop, domain.ReservationConfirmed, agentActor, "")

	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.ReservationConfirmed, resv.Status)
	assert.Equal(t, 0, *prop.UnitsAvailable)
	assert.Equal(t, domain.PropertyReserved, prop.Status)
}

func TestApplyTransition_CancelConfirmedReleasesUnit(t *testing.T) {
	resv := pendingReservation()
	resv.Status = domain.ReservationConfirmed
	prop := trackedProperty(1, 0)
	prop.Status = domain.PropertyReserved

	changed, err := applyTransition(resv, prop, domain.ReservationCancelled, agentActor, "customer no-show")

	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.ReservationCancelled, resv.Status)
	assert.Equal(t, "customer no-show", resv.RejectionReason)
	assert.Equal(t, 1, *prop.UnitsAvailable)
	assert.Equal(t, domain.PropertyAvailable, prop.Status)
}

func TestApplyTransition_ConfirmWithoutUnitsRejected(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(2, 0)
	prop.Status = domain.PropertyReserved

	changed, err := applyTransition(resv, prop, domain.ReservationConfirmed, agentActor, "")

	assert.ErrorIs(t, err, ErrNoUnitsAvailable)
	assert.False(t, changed)
	// nothing was applied
	assert.Equal(t, domain.ReservationPending, resv.Status)
	assert.Equal(t, 0, *prop.UnitsAvailable)
}

func TestApplyTransition_RoundTripRestoresInventory(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(3, 2)

	_, err := applyTransition(resv, prop, domain.ReservationConfirmed, agentActor, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, *prop.UnitsAvailable)

	_, err = applyTransition(resv, prop, domain.ReservationCancelled, agentActor, "plans changed")
	assert.NoError(t, err)
	assert.Equal(t, 2, *prop.UnitsAvailable)
}

func TestApplyTransition_RejectPendingRequiresReason(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(1, 1)

	_, err := applyTransition(resv, prop, domain.ReservationCancelled, agentActor, "")

	assert.ErrorIs(t, err, ErrMissingRejectionReason)
	assert.Equal(t, domain.ReservationPending, resv.Status)
}

func TestApplyTransition_CustomerCancelNeedsNoReason(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(1, 1)

	customer := Actor{UserID: 100, Role: domain.RoleCustomer}
	changed, err := applyTransition(resv, prop, domain.ReservationCancelled, customer, "")

	assert.NoError(t, err)
	assert.False(t, changed) // pending never consumed a unit
	assert.Equal(t, domain.ReservationCancelled, resv.Status)
}

func TestApplyTransition_InvalidPairs(t *testing.T) {
	cases := []struct {
		name string
		from domain.ReservationStatus
		to   domain.ReservationStatus
	}{
		{"cancelled to confirmed", domain.ReservationCancelled, domain.ReservationConfirmed},
		{"completed to cancelled", domain.ReservationCompleted, domain.ReservationCancelled},
		{"confirmed to pending", domain.ReservationConfirmed, domain.ReservationPending},
		{"confirmed to confirmed", domain.ReservationConfirmed, domain.ReservationConfirmed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resv := pendingReservation()
			resv.Status = tc.from
			prop := trackedProperty(1, 1)

			_, err := applyTransition(resv, prop, tc.to, adminActor, "some reason")
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestApplyTransition_AdminCanCompleteFromAnyState(t *testing.T) {
	for _, from := range []domain.ReservationStatus{
		domain.ReservationPending,
		domain.ReservationConfirmed,
		domain.ReservationCancelled,
	} {
		resv := pendingReservation()
		resv.Status = from
		prop := trackedProperty(2, 1)

		changed, err := applyTransition(resv, prop, domain.ReservationCompleted, adminActor, "")
		assert.NoError(t, err)
		assert.False(t, changed, "completing must not touch inventory")
		assert.Equal(t, domain.ReservationCompleted, resv.Status)
	}
}

func TestApplyTransition_AgentCannotTouchForeignReservation(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(1, 1)

	other := Actor{UserID: 999, Role: domain.RoleAgent}
	_, err := applyTransition(resv, prop, domain.ReservationConfirmed, other, "")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApplyTransition_CustomerCannotConfirm(t *testing.T) {
	resv := pendingReservation()
	prop := trackedProperty(1, 1)

	customer := Actor{UserID: 100, Role: domain.RoleCustomer}
	_, err := applyTransition(resv, prop, domain.ReservationConfirmed, customer, "")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApplyTransition_UntrackedPropertySkipsInventory(t *testing.T) {
	resv := pendingReservation()
	prop := &domain.Property{ID: 7, Name: "Single Villa", Status: domain.PropertyAvailable}

	changed, err := applyTransition(resv, prop, domain.ReservationConfirmed, agentActor, "")

	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.ReservationConfirmed, resv.Status)
	assert.Nil(t, prop.UnitsAvailable)
}

func TestApplyTransition_ReleaseNeverExceedsTotal(t *testing.T) {
	resv := pendingReservation()
	resv.Status = domain.ReservationConfirmed
	prop := trackedProperty(2, 2)

	changed, err := applyTransition(resv, prop, domain.ReservationCancelled, agentActor, "duplicate entry")

	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, *prop.UnitsAvailable)
}

func TestApplyTransition_InventoryBoundsInvariant(t *testing.T) {
	// 0 <= units_available <= units_total before and after every call,
	// across a burst of transitions in every direction.
	prop := trackedProperty(2, 2)

	steps := []struct {
		from domain.ReservationStatus
		to   domain.ReservationStatus
	}{
		{domain.ReservationPending, domain.ReservationConfirmed},
		{domain.ReservationPending, domain.ReservationConfirmed},
		{domain.ReservationConfirmed, domain.ReservationCancelled},
		{domain.ReservationPending, domain.ReservationConfirmed},
		{domain.ReservationConfirmed, domain.ReservationCancelled},
		{domain.ReservationConfirmed, domain.ReservationCancelled},
	}

	for _, st := range steps {
		resv := pendingReservation()
		resv.Status = st.from
		_, err := applyTransition(resv, prop, st.to, agentActor, "reason")
		if err != nil {
			assert.ErrorIs(t, err, ErrNoUnitsAvailable)
		}
		assert.GreaterOrEqual(t, *prop.UnitsAvailable, 0)
		assert.LessOrEqual(t, *prop.UnitsAvailable, *prop.UnitsTotal)
	}
}
