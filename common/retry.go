package common

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	defaultRetryCount    = 10
	defaultRetryWaitTime = time.Second * 2
)

var (
	ErrRetryTimeout  = errors.New("timeout")
	ErrRetryTryAgain = errors.New("retry try again")

	// http status codes returned by blockfrost or ogmios when the backend is temporarily unavailable
	retryableStatusCodes = []string{"status code 429", "status code 500", "status code 502", "status code 503"}
)

// RetryConfig defines ExecuteWithRetry configuration
type RetryConfig struct {
	retryCount       int
	retryWaitTime    time.Duration
	isRetryableError func(err error) bool
	logger           hclog.Logger
}

// RetryConfigOption defines ExecuteWithRetry configuration option
type RetryConfigOption func(c *RetryConfig)

func WithRetryCount(retryCount int) RetryConfigOption {
	return func(c *RetryConfig) {
		c.retryCount = retryCount
	}
}

func WithRetryWaitTime(retryWaitTime time.Duration) RetryConfigOption {
	return func(c *RetryConfig) {
		c.retryWaitTime = retryWaitTime
	}
}

func WithIsRetryableError(fn func(err error) bool) RetryConfigOption {
	return func(c *RetryConfig) {
		c.isRetryableError = fn
	}
}

func WithLogger(logger hclog.Logger) RetryConfigOption {
	return func(c *RetryConfig) {
		c.logger = logger
	}
}

// ExecuteWithRetry calls handler until it succeeds, returns a non retryable error,
// the context is done or the retry count is exhausted
func ExecuteWithRetry[T any](
	ctx context.Context, handler func(context.Context) (T, error), options ...RetryConfigOption,
) (result T, err error) {
	config := RetryConfig{
		retryCount:       defaultRetryCount,
		retryWaitTime:    defaultRetryWaitTime,
		isRetryableError: IsRetryableError,
		logger:           hclog.NewNullLogger(),
	}

	for _, opt := range options {
		opt(&config)
	}

	for count := 0; count < config.retryCount; count++ {
		result, err = handler(ctx)
		if err == nil {
			return result, nil
		}

		if !errors.Is(err, ErrRetryTryAgain) && !config.isRetryableError(err) {
			return result, err
		}

		config.logger.Info("execution failed, retrying", "attempt", count+1, "err", err)

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(config.retryWaitTime):
		}
	}

	return result, ErrRetryTimeout
}

// IsContextDoneErr returns true if the error is due to the context being cancelled or expired
func IsContextDoneErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsRetryableError reports network errors and temporary provider failures
func IsRetryableError(err error) bool {
	if IsContextDoneErr(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := err.Error()

	for _, code := range retryableStatusCodes {
		if strings.Contains(errStr, code) {
			return true
		}
	}

	return false
}
