package persistence

import (
	"context"

	appraffle "github.com/raffle/backend/internal/application/raffle"
	"github.com/raffle/backend/internal/domain/raffle"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations; the row
// locks taken by the stock repository's ForUpdate methods are held until the
// transaction commits or rolls back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appraffle.TransactionalRepositories) error) error {
	return translateError(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	}))
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// RaffleRepo returns the raffle repository scoped to the current transaction.
func (r *gormTransactionalRepositories) RaffleRepo() raffle.RaffleRepository {
	return NewGormRaffleRepository(r.tx)
}

// StockRepo returns the stock ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockRepo() raffle.StockRepository {
	return NewGormStockRepository(r.tx)
}

// DistributionRepo returns the distribution repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DistributionRepo() raffle.DistributionRepository {
	return NewGormDistributionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appraffle.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appraffle.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
