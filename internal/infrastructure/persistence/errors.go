package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/raffle/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that indicate the transaction lost a race and the
// caller should retry.
const (
	pgSerializationFailure = "40001"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
)

// translateError maps driver-level errors onto shared domain sentinels.
// Record-not-found becomes shared.ErrNotFound; serialization failures,
// deadlocks, and lock timeouts become shared.ErrConcurrencyConflict so the
// application layer can surface a retryable conflict instead of a 500.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgLockNotAvailable, pgDeadlockDetected:
			return shared.ErrConcurrencyConflict
		}
	}
	return err
}
