package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/keijiban-dev/keijiban/internal/config"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
	"github.com/keijiban-dev/keijiban/internal/logger"
)

// RetryPolicy wraps an operation in retry-with-backoff for transient storage
// faults. Delay before attempt k is BaseDelay * 2^(k-1), capped at MaxDelay.
// Constraint violations and other terminal errors pass through untouched.
type RetryPolicy struct {
	MaxAttempts uint64
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func RequestRetryPolicy(cfg config.Retry) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: uint64(cfg.RequestAttempts),
		BaseDelay:   time.Duration(cfg.BaseDelay) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.MaxDelay) * time.Millisecond,
	}
}

func StartupRetryPolicy(cfg config.Retry) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: uint64(cfg.StartupAttempts),
		BaseDelay:   time.Duration(cfg.BaseDelay) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.MaxDelay) * time.Millisecond,
	}
}

// Do runs op until it succeeds, fails terminally, or the attempt budget runs
// out. An exhausted budget surfaces as errors.StorageUnavailable wrapping the
// last transient fault. op is responsible for rolling back its own
// transaction state before returning an error.
func (p RetryPolicy) Do(op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.BaseDelay
	bo.MaxInterval = p.MaxDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0 // deterministic schedule
	bo.MaxElapsedTime = 0

	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		logger.Log.Warn("transient storage error", "attempt", attempt, "max_attempts", attempts, "error", err)
		return err
	}, backoff.WithMaxRetries(bo, attempts-1))
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		logger.Log.Error("retry budget exhausted", "attempts", attempts, "error", err)
		return &internal_errors.StorageUnavailable{Err: err}
	}
	return err
}

// IsTransient reports whether err is a connectivity/timeout-class failure
// expected to resolve on retry, as opposed to a data-integrity failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", // connection exception
			"53", // insufficient resources (pool exhaustion on the server side)
			"57": // operator intervention (admin shutdown, crash recovery)
			return true
		}
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
