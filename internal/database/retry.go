package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/workforce-api/internal/config"
)

// ExecutionStrategy runs a unit of work inside a transaction and, when the
// transaction fails for a transient reason, runs the whole unit again in a
// fresh transaction. Work that already committed is never repeated.
type ExecutionStrategy struct {
	maxAttempts     uint
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          *zap.Logger
}

// NewExecutionStrategy builds a strategy from the retry section of the config.
func NewExecutionStrategy(cfg config.RetryConfig, logger *zap.Logger) *ExecutionStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &ExecutionStrategy{
		maxAttempts:     uint(attempts),
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		logger:          logger,
	}
}

// Execute runs fn in a transaction on db. Errors for which IsTransient is
// false, including those wrapped with backoff.Permanent, end the loop at once.
func (s *ExecutionStrategy) Execute(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	b := backoff.NewExponentialBackOff()
	if s.initialInterval > 0 {
		b.InitialInterval = s.initialInterval
	}
	if s.maxInterval > 0 {
		b.MaxInterval = s.maxInterval
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return struct{}{}, nil
		}
		if !IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.maxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("transient database failure, retrying unit of work",
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", next),
				zap.Error(err))
		}),
	)

	return unwrapPermanent(err)
}

func unwrapPermanent(err error) error {
	for {
		perm, ok := err.(*backoff.PermanentError)
		if !ok {
			return err
		}
		err = perm.Err
	}
}

// IsTransient reports whether err is a connectivity or concurrency failure
// after which the same unit of work can be expected to succeed.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1040, // too many connections
			1053, // server shutdown in progress
			1205, // lock wait timeout
			1213: // deadlock
			return true
		}
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01", pgErr.Code == "57P01":
			return true
		}
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
