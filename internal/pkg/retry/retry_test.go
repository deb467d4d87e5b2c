package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
)

func TestToRetryOptionsAttempts(t *testing.T) {
	cfg := RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("boom")
	}, cfg.ToRetryOptions()...)

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 3, calls)
}

func TestToRetryOptionsZeroAttemptsUsesDefault(t *testing.T) {
	cfg := RetryConfig{Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	_ = retry.Do(func() error {
		calls++
		return errors.New("boom")
	}, cfg.ToRetryOptions()...)

	assert.Equal(t, defaultAttempts, calls)
}
