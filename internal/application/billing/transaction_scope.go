package billing

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
//
// The capacity check on a parent bill and the write of a new proxy bill
// must happen in the same transaction, combined with optimistic locking on
// the parent's version, so that two concurrent splits cannot both pass the
// check and jointly overshoot the ceiling.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// scoped to the current transaction.
type TransactionalRepositories interface {
	// BillRepo returns the bill repository scoped to the current transaction
	BillRepo() billing.BillRepository
	// ProxyBillRepo returns the proxy bill repository scoped to the current transaction
	ProxyBillRepo() billing.ProxyBillRepository
	// CreditRepo returns the credit entry repository scoped to the current transaction
	CreditRepo() credit.CreditEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	billRepo   billing.BillRepository
	proxyRepo  billing.ProxyBillRepository
	creditRepo credit.CreditEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	creditRepo credit.CreditEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BillRepo returns the bill repository.
func (s *NoOpTransactionScope) BillRepo() billing.BillRepository {
	return s.billRepo
}

// ProxyBillRepo returns the proxy bill repository.
func (s *NoOpTransactionScope) ProxyBillRepo() billing.ProxyBillRepository {
	return s.proxyRepo
}

// CreditRepo returns the credit entry repository.
func (s *NoOpTransactionScope) CreditRepo() credit.CreditEntryRepository {
	return s.creditRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
