package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDownstream = errors.New("downstream failed")

func newTestBreaker(maxFailures uint32) (*CircuitBreaker, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New("test", Config{
		MaxFailures: maxFailures,
		Timeout:     30 * time.Second,
	})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func fail() error    { return errDownstream }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errDownstream)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断器打开时不应调用下游")
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)

	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))
	require.NoError(t, cb.Execute(succeed))
	require.Error(t, cb.Execute(fail))

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, now := newTestBreaker(1)

	require.Error(t, cb.Execute(fail))
	require.Equal(t, StateOpen, cb.State())

	*now = now.Add(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, now := newTestBreaker(1)

	require.Error(t, cb.Execute(fail))
	*now = now.Add(31 * time.Second)

	require.Error(t, cb.Execute(fail))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_DisabledWhenMaxFailuresZero(t *testing.T) {
	cb, _ := newTestBreaker(0)

	for i := 0; i < 10; i++ {
		require.ErrorIs(t, cb.Execute(fail), errDownstream)
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IsFailureFilter(t *testing.T) {
	ignored := errors.New("client error")
	cb := New("filter", Config{
		MaxFailures: 1,
		Timeout:     time.Minute,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, ignored)
		},
	})

	require.ErrorIs(t, cb.Execute(func() error { return ignored }), ignored)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := New("cb", Config{
		MaxFailures: 1,
		Timeout:     time.Minute,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	require.Error(t, cb.Execute(fail))
	assert.Equal(t, []string{"cb:CLOSED->OPEN"}, transitions)
}
