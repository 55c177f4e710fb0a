package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	records []OrderRecord
}

func (f *fakeRepo) Create(ctx context.Context, rec *OrderRecord) error {
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*OrderRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, ErrNotFound
}

func TestRecordFillsDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	out, err := svc.Record(context.Background(), OrderRecord{
		ProductID: "sku-9",
		Price:     3.999,
		Qty:       0,
		Subtotal:  -1,
		Discount:  150,
	})
	require.NoError(t, err)
	assert.Len(t, out.ID, 32)
	assert.Equal(t, 1, out.Qty)
	assert.Equal(t, 4.0, out.Price)
	assert.Equal(t, 0.0, out.Subtotal)
	assert.Equal(t, 99, out.Discount)
	assert.NotEmpty(t, out.CreatedAt)
}

func TestRecordRequiresProductID(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Record(context.Background(), OrderRecord{Qty: 2})
	assert.Error(t, err)
}

func TestRecordFreshTokenPerSubmission(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Record(ctx, OrderRecord{ProductID: "sku-1", Qty: 1})
	require.NoError(t, err)
	b, err := svc.Record(ctx, OrderRecord{ProductID: "sku-1", Qty: 1})
	require.NoError(t, err)

	// No idempotency key: an identical resubmission is a new record.
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, repo.records, 2)
}

func TestGetMissingRecord(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
