package ledgersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/crackersmart/storefront/internal/dal/interfaces/ivendorrepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	vendorrepo "github.com/crackersmart/storefront/internal/dal/repositories/vendorrepo/postgres"
	"github.com/crackersmart/storefront/internal/service/models/vendormodel"
)

// LedgerService tracks what the shop owes each vendor. Purchases increase the
// balance, payments decrease it; the ledger is the transaction history folded
// oldest-first into a running balance.
type LedgerService struct {
	vendorRepo ivendorrepo.IVendorRepository
}

// option is a function that configures the LedgerService.
type option func(*LedgerService)

// MustNewLedgerService creates a new LedgerService.
func MustNewLedgerService(opts ...option) *LedgerService {
	s := &LedgerService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.vendorRepo == nil {
		panic("ledgersvc: vendor repository not configured")
	}

	return s
}

// WithPostgresClient wires the service to the Postgres-backed vendor repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *LedgerService) {
		s.vendorRepo = vendorrepo.NewPostgresVendorRepository(pgClient.Pool())
	}
}

// WithVendorRepository injects the repository directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithVendorRepository(repo ivendorrepo.IVendorRepository) option {
	return func(s *LedgerService) {
		s.vendorRepo = repo
	}
}

// CreateVendor registers a new supplier.
func (s *LedgerService) CreateVendor(ctx context.Context, v vendor.Vendor) (*vendor.Vendor, error) {
	if v.Name == "" {
		return nil, fmt.Errorf("vendor name is required")
	}

	return s.vendorRepo.Insert(ctx, v)
}

// GetVendor fetches one vendor by id.
func (s *LedgerService) GetVendor(ctx context.Context, id int64) (*vendor.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, id)
}

// ListVendors returns all vendors.
func (s *LedgerService) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

// RecordTransaction appends a purchase or payment to a vendor's ledger.
func (s *LedgerService) RecordTransaction(ctx context.Context, t vendor.Transaction) (*vendor.Transaction, error) {
	if _, err := vendor.ParseTransactionKind(t.Kind.String()); err != nil {
		return nil, err
	}
	if t.Amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive")
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now()
	}

	// Ensures the vendor exists before writing against it.
	if _, err := s.vendorRepo.GetByID(ctx, t.VendorID); err != nil {
		return nil, err
	}

	return s.vendorRepo.InsertTransaction(ctx, t)
}

// VendorLedger returns a vendor's full transaction history with running
// balances plus the aggregate summary.
func (s *LedgerService) VendorLedger(ctx context.Context, vendorID int64) ([]vendor.LedgerEntry, *vendor.Summary, error) {
	if _, err := s.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, nil, err
	}

	transactions, err := s.vendorRepo.QueryTransactions(ctx, vendorID)
	if err != nil {
		return nil, nil, err
	}

	entries, summary := BuildLedger(vendorID, transactions)

	return entries, summary, nil
}

// BuildLedger folds transactions, already ordered oldest first, into ledger
// entries with running balances and totals.
func BuildLedger(vendorID int64, transactions []vendor.Transaction) ([]vendor.LedgerEntry, *vendor.Summary) {
	entries := make([]vendor.LedgerEntry, 0, len(transactions))
	summary := &vendor.Summary{VendorID: vendorID}

	var balance int64
	for _, t := range transactions {
		switch t.Kind {
		case vendor.KindPurchase:
			balance += t.Amount
			summary.TotalPurchases += t.Amount
		case vendor.KindPayment:
			balance -= t.Amount
			summary.TotalPayments += t.Amount
		}

		entries = append(entries, vendor.LedgerEntry{
			Transaction: t,
			Balance:     balance,
		})
	}
	summary.Outstanding = balance

	return entries, summary
}
