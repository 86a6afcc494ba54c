package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgErrSerializationFailure = "40001" // serialization_failure
	pgErrDeadlockDetected     = "40P01" // deadlock_detected
)

const maxTxRetries = 5

// isRetryableTxError checks if a transaction failed because of a conflict with a concurrent transaction
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlockDetected
	}

	return false
}

// retryTx runs a transaction, retrying with exponential backoff while it fails on a concurrency conflict
func retryTx(ctx context.Context, txFn func() error) error {
	operation := func() error {
		err := txFn()
		if err == nil {
			return nil
		}
		if isRetryableTxError(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, maxTxRetries), ctx))
}
