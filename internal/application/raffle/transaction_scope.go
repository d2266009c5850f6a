package raffle

import (
	"context"

	"github.com/raffle/backend/internal/domain/raffle"
)

// TransactionScope provides transactional access to raffle repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Allocation's check-and-decrement runs inside this scope
// with row-level locks on stock ledger entries.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to raffle repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// Aggregate boundary notes:
//   - RaffleRepo: the Raffle aggregate root with its roster and stock ledger.
//   - StockRepo: lock-aware access to individual ledger rows. The ledger is
//     owned by the Raffle aggregate, but allocation mutates single rows under
//     SELECT ... FOR UPDATE instead of rewriting the whole aggregate.
//   - DistributionRepo: the append-only allocation log.
type TransactionalRepositories interface {
	// RaffleRepo returns the raffle repository scoped to the current transaction
	RaffleRepo() raffle.RaffleRepository
	// StockRepo returns the stock ledger repository scoped to the current transaction
	StockRepo() raffle.StockRepository
	// DistributionRepo returns the distribution repository scoped to the current transaction
	DistributionRepo() raffle.DistributionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and in-memory wiring.
type NoOpTransactionScope struct {
	raffleRepo       raffle.RaffleRepository
	stockRepo        raffle.StockRepository
	distributionRepo raffle.DistributionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	raffleRepo raffle.RaffleRepository,
	stockRepo raffle.StockRepository,
	distributionRepo raffle.DistributionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		raffleRepo:       raffleRepo,
		stockRepo:        stockRepo,
		distributionRepo: distributionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RaffleRepo returns the raffle repository.
func (s *NoOpTransactionScope) RaffleRepo() raffle.RaffleRepository {
	return s.raffleRepo
}

// StockRepo returns the stock ledger repository.
func (s *NoOpTransactionScope) StockRepo() raffle.StockRepository {
	return s.stockRepo
}

// DistributionRepo returns the distribution repository.
func (s *NoOpTransactionScope) DistributionRepo() raffle.DistributionRepository {
	return s.distributionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
