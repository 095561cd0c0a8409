package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("service unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("openlibrary", cfg)
	cb.now = clock.now
	return cb, clock
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3)})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	// 打开状态下不调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3)})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: ConsecutiveFailures(1),
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clock.advance(11 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: ConsecutiveFailures(1),
	})

	_ = cb.Execute(fail)
	clock.advance(11 * time.Second)

	assert.ErrorIs(t, cb.Execute(fail), errDown)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	errNotFound := errors.New("not found")
	cb, _ := newTestBreaker(Config{
		ReadyToTrip:  ConsecutiveFailures(2),
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errNotFound) },
	})

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errNotFound }), errNotFound)
	}
	assert.Equal(t, StateClosed, cb.State(), "正常的业务结果不计入失败")
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Interval:    time.Minute,
		ReadyToTrip: ConsecutiveFailures(3),
	})
	cb.expiry = clock.now().Add(time.Minute)

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.advance(2 * time.Minute)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}
