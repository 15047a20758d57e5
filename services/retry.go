package services

import (
	"context"
	"errors"
	"time"

	"hotel-booking/apperror"

	"github.com/sirupsen/logrus"
)

// RetryPolicy bounds the automatic retries of storage calls.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: 50 * time.Millisecond}
}

// withStorageRetry re-runs fn while it fails with ErrStorageUnavailable,
// waiting Backoff*attempt between tries. Other errors return immediately.
func withStorageRetry(ctx context.Context, policy RetryPolicy, logger *logrus.Logger, op string, fn func() error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperror.ErrStorageUnavailable) {
			return err
		}
		if attempt == attempts {
			break
		}

		logger.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempt,
		}).WithError(err).Warn("storage unavailable, retrying")

		timer := time.NewTimer(policy.Backoff * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
