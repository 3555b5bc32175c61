package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/consts"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userIDs []string, title, body string) error {
	args := m.Called(userIDs, title, body)
	return args.Error(0)
}

type fakeProperties map[string]*model.Property

func (f fakeProperties) GetByID(_ context.Context, id string) (*model.Property, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}

type fakeCache struct {
	handled map[string]bool
	err     error
}

func (f *fakeCache) EventHandled(eventID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.handled[eventID], nil
}

func (f *fakeCache) MarkEventHandled(eventID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.handled[eventID] = true
	return nil
}

func (f *fakeCache) ResumeToken(string) (string, error)  { return "", nil }
func (f *fakeCache) SaveResumeToken(string, string) error { return nil }

func raw(t *testing.T, doc bson.M) bson.Raw {
	data, err := bson.Marshal(doc)
	require.NoError(t, err)
	return data
}

func newTestService(n *mockNotifier, repos *model.Repos) Service {
	return NewService(repos, config.Default(), n)
}

func TestRentPaymentWriteNotifiesTenantAndLandlord(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"T1", "L1"}, consts.RentPaymentTitle, consts.RentPaymentBody).Return(nil).Once()

	event := &model.ChangeEvent{
		Collection: consts.RentPayments,
		Kind:       model.KindUpdate,
		After:      raw(t, bson.M{"_id": "P1", "tenant_uid": "T1", "landlord_uid": "L1", "paid": true}),
	}
	require.NoError(t, newTestService(n, &model.Repos{}).Handle(context.Background(), event))
	n.AssertExpectations(t)
}

func TestRentPaymentDeleteUsesPreImage(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"T1", "L1"}, consts.RentPaymentTitle, consts.RentPaymentBody).Return(nil).Once()

	event := &model.ChangeEvent{
		Collection: consts.RentPayments,
		Kind:       model.KindDelete,
		Before:     raw(t, bson.M{"_id": "P1", "tenant_uid": "T1", "landlord_uid": "L1"}),
	}
	require.NoError(t, newTestService(n, &model.Repos{}).Handle(context.Background(), event))
	n.AssertExpectations(t)
}

func TestDeleteWithoutPreImageFails(t *testing.T) {
	n := &mockNotifier{}
	event := &model.ChangeEvent{Collection: consts.RentPayments, Kind: model.KindDelete}

	err := newTestService(n, &model.Repos{}).Handle(context.Background(), event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoDocument))
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestMaintenanceFallbackBody(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"", "L1"}, consts.MaintenanceTitle, consts.MaintenanceFallbackBody).Return(nil).Once()

	event := &model.ChangeEvent{
		Collection: consts.MaintenanceRequests,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "M1", "landlord_uid": "L1", "title": "", "status": model.MaintenanceOpen}),
	}
	require.NoError(t, newTestService(n, &model.Repos{}).Handle(context.Background(), event))
	n.AssertExpectations(t)
}

func TestMaintenanceTitleBody(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"T1", "L1"}, consts.MaintenanceTitle, "Leaky faucet").Return(nil).Once()

	event := &model.ChangeEvent{
		Collection: consts.MaintenanceRequests,
		Kind:       model.KindUpdate,
		After:      raw(t, bson.M{"_id": "M1", "tenant_uid": "T1", "landlord_uid": "L1", "title": "Leaky faucet"}),
	}
	require.NoError(t, newTestService(n, &model.Repos{}).Handle(context.Background(), event))
	n.AssertExpectations(t)
}

func TestLandlordResolvedFromProperty(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"T1", "L9"}, consts.RentPaymentTitle, consts.RentPaymentBody).Return(nil).Once()

	repos := &model.Repos{Properties: fakeProperties{"PR1": {ID: "PR1", LandlordUID: "L9"}}}
	event := &model.ChangeEvent{
		Collection: consts.RentPayments,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "P1", "tenant_uid": "T1", "property_id": "PR1"}),
	}
	require.NoError(t, newTestService(n, repos).Handle(context.Background(), event))
	n.AssertExpectations(t)
}

func TestMessageCreateNotifiesRecipient(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"U2"}, consts.MessageTitle, "hello").Return(nil).Once()
	n.On("Notify", []string{"U3"}, consts.MessageTitle, consts.MessageFallbackBody).Return(nil).Once()
	svc := newTestService(n, &model.Repos{})

	require.NoError(t, svc.Handle(context.Background(), &model.ChangeEvent{
		Collection: consts.Messages,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "m1", "from": "U1", "to": "U2", "text": "hello"}),
	}))
	require.NoError(t, svc.Handle(context.Background(), &model.ChangeEvent{
		Collection: consts.Messages,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "m2", "from": "U1", "to": "U3"}),
	}))
	n.AssertExpectations(t)
}

func TestMessageUpdateIgnored(t *testing.T) {
	n := &mockNotifier{}
	svc := newTestService(n, &model.Repos{})

	for _, kind := range []model.ChangeKind{model.KindUpdate, model.KindDelete} {
		require.NoError(t, svc.Handle(context.Background(), &model.ChangeEvent{
			Collection: consts.Messages,
			Kind:       kind,
			After:      raw(t, bson.M{"_id": "m1", "to": "U2", "read": true}),
		}))
	}
	require.NoError(t, svc.Handle(context.Background(), &model.ChangeEvent{
		Collection: consts.Announcements,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "a1"}),
	}))
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcherErrorPropagates(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("push down"))

	err := newTestService(n, &model.Repos{}).Handle(context.Background(), &model.ChangeEvent{
		Collection: consts.RentPayments,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "P1", "tenant_uid": "T1"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push down")
}

func TestRedeliveredEventSkipped(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"U2"}, consts.MessageTitle, "hi").Return(nil).Once()
	cache := &fakeCache{handled: map[string]bool{}}
	svc := newTestService(n, &model.Repos{Cache: cache})

	event := &model.ChangeEvent{
		ID:         "evt-1",
		Collection: consts.Messages,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "m1", "to": "U2", "text": "hi"}),
	}
	require.NoError(t, svc.Handle(context.Background(), event))
	require.NoError(t, svc.Handle(context.Background(), event))
	n.AssertNumberOfCalls(t, "Notify", 1)
}

func TestFailedDispatchRetriedOnRedelivery(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"U2"}, consts.MessageTitle, "hi").Return(errors.New("push down")).Once()
	n.On("Notify", []string{"U2"}, consts.MessageTitle, "hi").Return(nil).Once()
	cache := &fakeCache{handled: map[string]bool{}}
	svc := newTestService(n, &model.Repos{Cache: cache})

	event := &model.ChangeEvent{
		ID:         "evt-2",
		Collection: consts.Messages,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "m2", "to": "U2", "text": "hi"}),
	}
	err := svc.Handle(context.Background(), event)
	require.Error(t, err)
	assert.False(t, cache.handled["evt-2"])

	require.NoError(t, svc.Handle(context.Background(), event))
	assert.True(t, cache.handled["evt-2"])
	require.NoError(t, svc.Handle(context.Background(), event))
	n.AssertNumberOfCalls(t, "Notify", 2)
	n.AssertExpectations(t)
}

func TestCacheFailureStillDispatches(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", []string{"U2"}, consts.MessageTitle, "hi").Return(nil).Once()
	svc := newTestService(n, &model.Repos{Cache: &fakeCache{err: errors.New("redis down")}})

	require.NoError(t, svc.Handle(context.Background(), &model.ChangeEvent{
		ID:         "evt-1",
		Collection: consts.Messages,
		Kind:       model.KindCreate,
		After:      raw(t, bson.M{"_id": "m1", "to": "U2", "text": "hi"}),
	}))
	n.AssertExpectations(t)
}

func TestTableMatching(t *testing.T) {
	table := DefaultTable(&mockNotifier{}, nil)

	assert.Len(t, table.Match(consts.RentPayments, model.KindCreate), 1)
	assert.Len(t, table.Match(consts.RentPayments, model.KindDelete), 1)
	assert.Len(t, table.Match(consts.Messages, model.KindCreate), 1)
	assert.Empty(t, table.Match(consts.Messages, model.KindUpdate))
	assert.Empty(t, table.Match(consts.Leases, model.KindUpdate))
	assert.Equal(t, []string{consts.RentPayments, consts.MaintenanceRequests, consts.Messages}, table.Collections())
}
