package resilience

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		JitterFraction: 0,
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	val, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", NewTransientError(eris.New("boom"), 503)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, eris.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(eris.New("still down"), 500)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Retry(ctx, fastRetry(5), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(eris.New("down"), 500)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "deadline exceeded" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(eris.New("validation failed")))
	assert.True(t, IsTransient(NewTransientError(eris.New("x"), 429)))
	assert.True(t, IsTransient(eris.Wrap(NewTransientError(eris.New("x"), 502), "outer")))

	var netErr net.Error = timeoutErr{}
	assert.True(t, IsTransient(netErr))
	assert.True(t, IsTransient(eris.New("read tcp: i/o timeout")))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), code)
	}
	for _, code := range []int{200, 301, 400, 403, 404} {
		assert.False(t, IsTransientHTTPStatus(code), code)
	}
}

func TestSafe_ReturnsValue(t *testing.T) {
	got := Safe(context.Background(), "test", "default", func(ctx context.Context) (string, error) {
		return "value", nil
	})
	assert.Equal(t, "value", got)
}

func TestSafe_DefaultOnError(t *testing.T) {
	got := Safe(context.Background(), "test", 42, func(ctx context.Context) (int, error) {
		return 0, eris.New("kaput")
	})
	assert.Equal(t, 42, got)
}

func TestSafe_RecoversPanic(t *testing.T) {
	got := Safe(context.Background(), "test", []string{"fallback"}, func(ctx context.Context) ([]string, error) {
		panic("unexpected")
	})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestBreaker(t *testing.T) {
	b := NewBreaker(2, time.Hour)
	assert.True(t, b.Allow())
	b.Record(eris.New("fail"))
	assert.True(t, b.Allow())
	b.Record(eris.New("fail"))
	assert.False(t, b.Allow(), "open after threshold failures")

	// Success resets.
	b2 := NewBreaker(2, time.Hour)
	b2.Record(eris.New("fail"))
	b2.Record(nil)
	b2.Record(eris.New("fail"))
	assert.True(t, b2.Allow())
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	b := NewBreaker(1, time.Millisecond)
	b.Record(eris.New("fail"))
	assert.False(t, b.Allow())
	time.Sleep(5 * time.Millisecond)
	assert.True(t, b.Allow(), "probe allowed after cooldown")
	b.Record(eris.New("fail"))
	assert.False(t, b.Allow(), "probe failure reopens")
}
