package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"nam3land/internal/domain"
	"nam3land/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// fakeStore is an in-memory ReservationRepository. ExecTransition mirrors the
// real implementation's contract: decide runs against copies under a lock and
// nothing is persisted when it errors.
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]domain.Reservation
	properties   map[int64]domain.Property
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:       1,
		reservations: make(map[int64]domain.Reservation),
		properties:   make(map[int64]domain.Property),
	}
}

func (f *fakeStore) putProperty(p domain.Property) {
	f.properties[p.ID] = p
}

func (f *fakeStore) Create(ctx context.Context, resv *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resv.ID = f.nextID
	f.nextID++
	resv.CreatedAt = time.Now()
	f.reservations[resv.ID] = *resv
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeStore) CountActive(ctx context.Context, customerID, propertyID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cnt int64
	for _, r := range f.reservations {
		if r.CustomerID == customerID && r.PropertyID == propertyID && r.Status.IsActive() {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeStore) ListByCustomer(ctx context.Context, customerID int64) ([]repository.ReservationDetails, error) {
	return nil, nil
}

func (f *fakeStore) ListByAgent(ctx context.Context, agentID *int64) ([]repository.ReservationDetails, error) {
	return nil, nil
}

func (f *fakeStore) ListReport(ctx context.Context) ([]repository.ReservationDetails, error) {
	return nil, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeStore) ExecTransition(
	ctx context.Context,
	reservationID int64,
	decide func(resv *domain.Reservation, prop *domain.Property) (bool, error),
) (*domain.Reservation, *domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[reservationID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	p, ok := f.properties[r.PropertyID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}

	resv := r
	prop := p
	propertyChanged, err := decide(&resv, &prop)
	if err != nil {
		return nil, nil, err
	}

	f.reservations[reservationID] = resv
	var outProp *domain.Property
	if propertyChanged {
		f.properties[prop.ID] = prop
		cp := prop
		outProp = &cp
	}
	out := resv
	return &out, outProp, nil
}

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyReservationPending(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error {
	args := m.Called(ctx, customerID, reservationID, propertyName, at)
	return args.Error(0)
}

func (m *mockNotifier) NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error {
	args := m.Called(ctx, customerID, reservationID, propertyName, at)
	return args.Error(0)
}

func (m *mockNotifier) NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, propertyName, reason string) error {
	args := m.Called(ctx, customerID, reservationID, propertyName, reason)
	return args.Error(0)
}

type mockConvStarter struct {
	mock.Mock
}

func (m *mockConvStarter) EnsureConversation(ctx context.Context, customerID, agentID int64, propertyID *int64) (*domain.Conversation, error) {
	args := m.Called(ctx, customerID, agentID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func agentID(v int64) *int64 { return &v }

func newTestService(store *fakeStore) (*Service, *mockPropertyRepo, *mockNotifier, *mockConvStarter) {
	props := new(mockPropertyRepo)
	notifs := new(mockNotifier)
	convs := new(mockConvStarter)
	return NewService(store, props, notifs, convs), props, notifs, convs
}

func TestRequestReservation_Success(t *testing.T) {
	store := newFakeStore()
	svc, props, notifs, convs := newTestService(store)

	prop := &domain.Property{ID: 7, Name: "Green Valley Residence", AgentID: agentID(200)}
	props.On("GetByID", mock.Anything, int64(7)).Return(prop, nil)
	notifs.On("NotifyReservationPending", mock.Anything, int64(100), mock.Anything, "Green Valley Residence", mock.Anything).Return(nil)
	convs.On("EnsureConversation", mock.Anything, int64(100), int64(200), mock.Anything).Return(&domain.Conversation{ID: 1}, nil)

	resv, err := svc.RequestReservation(context.Background(), 100, CreateReservationRequest{
		PropertyID:      7,
		ReservationTime: time.Now().Add(48 * time.Hour),
		Notes:           "prefer afternoon",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, resv.Status)
	assert.Equal(t, int64(200), resv.AgentID)
	notifs.AssertCalled(t, "NotifyReservationPending", mock.Anything, int64(100), resv.ID, "Green Valley Residence", mock.Anything)
	convs.AssertExpectations(t)
}

func TestRequestReservation_PastTime(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestService(store)

	_, err := svc.RequestReservation(context.Background(), 100, CreateReservationRequest{
		PropertyID:      7,
		ReservationTime: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestReservation_UnassignedProperty(t *testing.T) {
	store := newFakeStore()
	svc, props, _, _ := newTestService(store)

	props.On("GetByID", mock.Anything, int64(7)).Return(&domain.Property{ID: 7, Name: "Orphan Lot"}, nil)

	_, err := svc.RequestReservation(context.Background(), 100, CreateReservationRequest{
		PropertyID:      7,
		ReservationTime: time.Now().Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrPropertyUnassigned)
}

func TestRequestReservation_DuplicateActive(t *testing.T) {
	store := newFakeStore()
	svc, props, notifs, convs := newTestService(store)

	prop := &domain.Property{ID: 7, Name: "Green Valley Residence", AgentID: agentID(200)}
	props.On("GetByID", mock.Anything, int64(7)).Return(prop, nil)
	notifs.On("NotifyReservationPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	convs.On("EnsureConversation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&domain.Conversation{ID: 1}, nil)

	req := CreateReservationRequest{PropertyID: 7, ReservationTime: time.Now().Add(time.Hour)}

	_, err := svc.RequestReservation(context.Background(), 100, req)
	assert.NoError(t, err)

	_, err = svc.RequestReservation(context.Background(), 100, req)
	assert.ErrorIs(t, err, ErrDuplicateActiveReservation)

	// a different customer is unaffected
	_, err = svc.RequestReservation(context.Background(), 101, req)
	assert.NoError(t, err)
}

func seedConfirmable(store *fakeStore, unitsTotal, unitsAvailable int) (resvID int64) {
	store.putProperty(domain.Property{
		ID:             7,
		Name:           "Green Valley Residence",
		Status:         domain.PropertyAvailable,
		UnitsTotal:     &unitsTotal,
		UnitsAvailable: &unitsAvailable,
	})
	store.reservations[10] = domain.Reservation{
		ID: 10, CustomerID: 100, PropertyID: 7, AgentID: 200,
		Status: domain.ReservationPending, ReservationTime: time.Now().Add(time.Hour),
	}
	return 10
}

func TestTransitionStatus_ConfirmUpdatesInventoryAndNotifies(t *testing.T) {
	store := newFakeStore()
	svc, _, notifs, _ := newTestService(store)
	id := seedConfirmable(store, 1, 1)

	notifs.On("NotifyReservationConfirmed", mock.Anything, int64(100), id, "Green Valley Residence", mock.Anything).Return(nil)

	resv, prop, err := svc.TransitionStatus(context.Background(), Actor{UserID: 200, Role: domain.RoleAgent},
		id, domain.ReservationConfirmed, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, resv.Status)
	if assert.NotNil(t, prop) {
		assert.Equal(t, 0, *prop.UnitsAvailable)
		assert.Equal(t, domain.PropertyReserved, prop.Status)
	}
	notifs.AssertExpectations(t)
}

func TestTransitionStatus_NotifierFailureDoesNotFailTransition(t *testing.T) {
	store := newFakeStore()
	svc, _, notifs, _ := newTestService(store)
	id := seedConfirmable(store, 1, 1)

	notifs.On("NotifyReservationConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	resv, _, err := svc.TransitionStatus(context.Background(), Actor{UserID: 200, Role: domain.RoleAgent},
		id, domain.ReservationConfirmed, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, resv.Status)
}

func TestTransitionStatus_SecondConfirmOnLastUnitLoses(t *testing.T) {
	store := newFakeStore()
	svc, _, notifs, _ := newTestService(store)
	notifs.On("NotifyReservationConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	one := 1
	store.putProperty(domain.Property{
		ID: 7, Name: "Green Valley Residence", Status: domain.PropertyAvailable,
		UnitsTotal: &one, UnitsAvailable: &one,
	})
	store.reservations[10] = domain.Reservation{ID: 10, CustomerID: 100, PropertyID: 7, AgentID: 200, Status: domain.ReservationPending}
	store.reservations[11] = domain.Reservation{ID: 11, CustomerID: 101, PropertyID: 7, AgentID: 200, Status: domain.ReservationPending}

	agent := Actor{UserID: 200, Role: domain.RoleAgent}

	_, _, err := svc.TransitionStatus(context.Background(), agent, 10, domain.ReservationConfirmed, "")
	assert.NoError(t, err)

	// the competing confirm observes zero units and must not oversell
	_, _, err = svc.TransitionStatus(context.Background(), agent, 11, domain.ReservationConfirmed, "")
	assert.ErrorIs(t, err, ErrNoUnitsAvailable)

	p := store.properties[7]
	assert.Equal(t, 0, *p.UnitsAvailable)
	second := store.reservations[11]
	assert.Equal(t, domain.ReservationPending, second.Status)
}

func TestTransitionStatus_ConcurrentConfirmsNeverOversell(t *testing.T) {
	store := newFakeStore()
	svc, _, notifs, _ := newTestService(store)
	notifs.On("NotifyReservationConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	one := 1
	store.putProperty(domain.Property{
		ID: 7, Name: "Green Valley Residence", Status: domain.PropertyAvailable,
		UnitsTotal: &one, UnitsAvailable: &one,
	})
	store.reservations[10] = domain.Reservation{ID: 10, CustomerID: 100, PropertyID: 7, AgentID: 200, Status: domain.ReservationPending}
	store.reservations[11] = domain.Reservation{ID: 11, CustomerID: 101, PropertyID: 7, AgentID: 200, Status: domain.ReservationPending}

	agent := Actor{UserID: 200, Role: domain.RoleAgent}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{10, 11} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, _, errs[i] = svc.TransitionStatus(context.Background(), agent, id, domain.ReservationConfirmed, "")
		}(i, id)
	}
	wg.Wait()

	var ok, oversold int
	for _, err := range errs {
		if err == nil {
			ok++
		} else if assert.ErrorIs(t, err, ErrNoUnitsAvailable) {
			oversold++
		}
	}
	assert.Equal(t, 1, ok, "exactly one confirm wins the last unit")
	assert.Equal(t, 1, oversold)

	p := store.properties[7]
	assert.Equal(t, 0, *p.UnitsAvailable)
}

func TestTransitionStatus_UnknownReservation(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestService(store)

	_, _, err := svc.TransitionStatus(context.Background(), Actor{UserID: 1, Role: domain.RoleAdmin},
		404, domain.ReservationConfirmed, "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionStatus_UnknownStatusValue(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestService(store)

	_, _, err := svc.TransitionStatus(context.Background(), Actor{UserID: 1, Role: domain.RoleAdmin},
		10, domain.ReservationStatus("archived"), "")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteReservation_Rules(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestService(store)

	store.reservations[10] = domain.Reservation{ID: 10, CustomerID: 100, Status: domain.ReservationPending}
	store.reservations[11] = domain.Reservation{ID: 11, CustomerID: 100, Status: domain.ReservationCancelled}

	err := svc.DeleteReservation(context.Background(), 100, 10)
	assert.ErrorIs(t, err, ErrCannotDeletePending)

	err = svc.DeleteReservation(context.Background(), 999, 11)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.DeleteReservation(context.Background(), 100, 11)
	assert.NoError(t, err)

	err = svc.DeleteReservation(context.Background(), 100, 11)
	assert.ErrorIs(t, err, ErrNotFound)
}
