package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/domain"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// RetrierConfig controls the backoff schedule. MaxRetries 0 disables retrying.
type RetrierConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetrierConfig returns the settings used when none are configured.
func DefaultRetrierConfig() RetrierConfig {
	return RetrierConfig{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a retrier. Zero durations fall back to the defaults.
func NewRetrier(cfg RetrierConfig, logger zerolog.Logger) *Retrier {
	def := DefaultRetrierConfig()
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = def.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = def.MaxInterval
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = def.MaxElapsedTime
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Retrier{
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		maxElapsedTime:  cfg.MaxElapsedTime,
		logger:          logger,
	}
}

// Retry executes an operation with exponential backoff on retryable errors.
// When retries run out the last error is returned unchanged.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("concurrency conflict, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError reports whether err is a write-write conflict.
func isRetryableError(err error) bool {
	if domain.IsRetryable(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
