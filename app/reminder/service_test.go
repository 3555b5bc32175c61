package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

type fakePayments struct {
	payments  []*model.RentPayment
	err       error
	batchSize int32
}

func (f *fakePayments) ListUnpaid(_ context.Context, batchSize int32) ([]*model.RentPayment, error) {
	f.batchSize = batchSize
	return f.payments, f.err
}

// fakeReminders commits atomically: on failure nothing is kept.
type fakeReminders struct {
	stored map[string]*model.RentReminder
	fail   error
	calls  int
}

func (f *fakeReminders) CreateBatch(_ context.Context, reminders []*model.RentReminder) (int, error) {
	f.calls++
	if f.fail != nil {
		return 0, f.fail
	}
	if f.stored == nil {
		f.stored = map[string]*model.RentReminder{}
	}
	created := 0
	for _, r := range reminders {
		if _, ok := f.stored[r.ID]; ok {
			continue
		}
		f.stored[r.ID] = r
		created++
	}
	return created, nil
}

var june = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func newTestService(p *fakePayments, r *fakeReminders) Service {
	return NewService(&model.Repos{RentPayments: p, RentReminders: r}, config.Default())
}

func TestSweepMonthFilter(t *testing.T) {
	payments := &fakePayments{payments: []*model.RentPayment{
		{ID: "P1", TenantUID: "T1", LandlordUID: "L1", PropertyID: "PR1", Amount: 1200, DueDate: "2024-06-01"},
		{ID: "P2", TenantUID: "T2", DueDate: "2024-07-01"},
		{ID: "P3", TenantUID: "T3", DueDate: "garbage"},
		{ID: "P4", TenantUID: "T4", DueDate: "2023-06-15"},
	}}
	reminders := &fakeReminders{}

	res, err := newTestService(payments, reminders).Sweep(context.Background(), june)
	require.NoError(t, err)

	assert.Equal(t, &model.SweepResult{Scanned: 4, Matched: 1, Created: 1}, res)
	assert.Equal(t, int32(500), payments.batchSize)
	require.Len(t, reminders.stored, 1)
	r := reminders.stored["P1-2024-06"]
	require.NotNil(t, r)
	assert.Equal(t, "P1", r.PaymentID)
	assert.Equal(t, "T1", r.TenantUID)
	assert.Equal(t, "L1", r.LandlordUID)
	assert.Equal(t, "PR1", r.PropertyID)
	assert.Equal(t, 1200.0, r.Amount)
	assert.Equal(t, "2024-06-01", r.DueDate)
}

func TestSweepFailedBatchLeavesNothing(t *testing.T) {
	payments := &fakePayments{payments: []*model.RentPayment{
		{ID: "P1", DueDate: "2024-06-01"},
		{ID: "P2", DueDate: "2024-06-10"},
	}}
	reminders := &fakeReminders{fail: errors.New("transaction aborted")}

	res, err := newTestService(payments, reminders).Sweep(context.Background(), june)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, reminders.stored)
}

func TestSweepRerunIsIdempotent(t *testing.T) {
	payments := &fakePayments{payments: []*model.RentPayment{
		{ID: "P1", DueDate: "2024-06-01"},
		{ID: "P2", DueDate: "06/20/2024"},
	}}
	reminders := &fakeReminders{}
	svc := newTestService(payments, reminders)

	first, err := svc.Sweep(context.Background(), june)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := svc.Sweep(context.Background(), june.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Matched)
	assert.Equal(t, 0, second.Created)
	assert.Len(t, reminders.stored, 2)
}

func TestSweepNoMatchesSkipsCommit(t *testing.T) {
	payments := &fakePayments{payments: []*model.RentPayment{{ID: "P1", DueDate: "2024-01-01"}}}
	reminders := &fakeReminders{}

	res, err := newTestService(payments, reminders).Sweep(context.Background(), june)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Zero(t, reminders.calls)
}

func TestSweepListFailure(t *testing.T) {
	payments := &fakePayments{err: errors.New("timeout")}
	_, err := newTestService(payments, &fakeReminders{}).Sweep(context.Background(), june)
	assert.Error(t, err)
}
