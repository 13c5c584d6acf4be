package ledgersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
)

var errVendorNotFound = errors.New("vendor not found")

type fakeVendorRepo struct {
	vendors      map[int64]vendor.Vendor
	transactions []vendor.Transaction
	nextID       int64
}

func newFakeVendorRepo(vendors ...vendor.Vendor) *fakeVendorRepo {
	r := &fakeVendorRepo{vendors: map[int64]vendor.Vendor{}, nextID: 1}
	for _, v := range vendors {
		r.vendors[v.ID] = v
	}

	return r
}

func (r *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	v.ID = r.nextID
	r.nextID++
	r.vendors[v.ID] = v

	return &v, nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, errVendorNotFound
	}

	return &v, nil
}

func (r *fakeVendorRepo) List(_ context.Context) ([]vendor.Vendor, error) {
	result := make([]vendor.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		result = append(result, v)
	}

	return result, nil
}

func (r *fakeVendorRepo) InsertTransaction(_ context.Context, t vendor.Transaction) (*vendor.Transaction, error) {
	t.ID = int64(len(r.transactions) + 1)
	r.transactions = append(r.transactions, t)

	return &t, nil
}

func (r *fakeVendorRepo) QueryTransactions(_ context.Context, vendorID int64) ([]vendor.Transaction, error) {
	var result []vendor.Transaction
	for _, t := range r.transactions {
		if t.VendorID == vendorID {
			result = append(result, t)
		}
	}

	return result, nil
}

func day(n int) time.Time {
	return time.Date(2025, time.July, n, 0, 0, 0, 0, time.UTC)
}

func TestBuildLedgerRunningBalance(t *testing.T) {
	transactions := []vendor.Transaction{
		{ID: 1, VendorID: 7, Kind: vendor.KindPurchase, Amount: 100000, OccurredAt: day(1)},
		{ID: 2, VendorID: 7, Kind: vendor.KindPayment, Amount: 40000, OccurredAt: day(5)},
		{ID: 3, VendorID: 7, Kind: vendor.KindPurchase, Amount: 25000, OccurredAt: day(9)},
		{ID: 4, VendorID: 7, Kind: vendor.KindPayment, Amount: 85000, OccurredAt: day(12)},
	}

	entries, summary := BuildLedger(7, transactions)

	require.Len(t, entries, 4)
	assert.EqualValues(t, 100000, entries[0].Balance)
	assert.EqualValues(t, 60000, entries[1].Balance)
	assert.EqualValues(t, 85000, entries[2].Balance)
	assert.EqualValues(t, 0, entries[3].Balance)

	assert.EqualValues(t, 125000, summary.TotalPurchases)
	assert.EqualValues(t, 125000, summary.TotalPayments)
	assert.Zero(t, summary.Outstanding)
}

func TestBuildLedgerOverpaymentGoesNegative(t *testing.T) {
	transactions := []vendor.Transaction{
		{Kind: vendor.KindPurchase, Amount: 10000},
		{Kind: vendor.KindPayment, Amount: 15000},
	}

	entries, summary := BuildLedger(1, transactions)

	assert.EqualValues(t, -5000, entries[1].Balance)
	assert.EqualValues(t, -5000, summary.Outstanding)
}

func TestBuildLedgerEmpty(t *testing.T) {
	entries, summary := BuildLedger(1, nil)

	assert.Empty(t, entries)
	assert.Zero(t, summary.Outstanding)
}

func TestRecordTransactionValidation(t *testing.T) {
	repo := newFakeVendorRepo(vendor.Vendor{ID: 1, Name: "Sree Traders"})
	svc := MustNewLedgerService(WithVendorRepository(repo))

	_, err := svc.RecordTransaction(context.Background(), vendor.Transaction{
		VendorID: 1, Kind: "loan", Amount: 100,
	})
	assert.ErrorIs(t, err, vendor.ErrInvalidTransactionKind)

	_, err = svc.RecordTransaction(context.Background(), vendor.Transaction{
		VendorID: 1, Kind: vendor.KindPayment, Amount: 0,
	})
	assert.Error(t, err)

	recorded, err := svc.RecordTransaction(context.Background(), vendor.Transaction{
		VendorID: 1, Kind: vendor.KindPurchase, Amount: 5000,
	})
	require.NoError(t, err)
	assert.False(t, recorded.OccurredAt.IsZero())
}

func TestVendorLedger(t *testing.T) {
	repo := newFakeVendorRepo(vendor.Vendor{ID: 1, Name: "Sree Traders"})
	svc := MustNewLedgerService(WithVendorRepository(repo))

	_, err := svc.RecordTransaction(context.Background(), vendor.Transaction{
		VendorID: 1, Kind: vendor.KindPurchase, Amount: 30000, OccurredAt: day(1),
	})
	require.NoError(t, err)
	_, err = svc.RecordTransaction(context.Background(), vendor.Transaction{
		VendorID: 1, Kind: vendor.KindPayment, Amount: 10000, OccurredAt: day(2),
	})
	require.NoError(t, err)

	entries, summary, err := svc.VendorLedger(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.EqualValues(t, 20000, entries[1].Balance)
	assert.EqualValues(t, 20000, summary.Outstanding)
}
