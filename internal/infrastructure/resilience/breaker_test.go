package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// newTestBreaker returns a breaker on a manual clock. Mutating *clock
// advances time for every subsequent call.
func newTestBreaker(cfg Settings) (*Breaker, *time.Time) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.Now = func() time.Time { return clock }
	return New("test", cfg), &clock
}

func fail(b *Breaker) error {
	_, err := b.Execute(func() (interface{}, error) { return nil, errBoom })
	return err
}

func succeed(b *Breaker) error {
	_, err := b.Execute(func() (interface{}, error) { return "ok", nil })
	return err
}

func TestExecutePassesThrough(t *testing.T) {
	b, _ := newTestBreaker(Settings{})

	result, err := b.Execute(func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, StateClosed, b.State())
}

func TestTripsOnConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, fail(b), errBoom)
	}
	assert.Equal(t, StateOpen, b.State())

	// Shed without invoking the request.
	called := false
	_, err := b.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestTripsOnFailureRatio(t *testing.T) {
	b, _ := newTestBreaker(Settings{
		ReadyToTrip: func(c Counts) bool {
			return c.Requests >= 10 && float64(c.TotalFailures)/float64(c.Requests) > 0.5
		},
	})

	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			require.NoError(t, succeed(b))
		} else {
			require.ErrorIs(t, fail(b), errBoom)
		}
	}
	assert.Equal(t, StateClosed, b.State())

	require.ErrorIs(t, fail(b), errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	require.ErrorIs(t, fail(b), errBoom)
	require.ErrorIs(t, fail(b), errBoom)
	require.NoError(t, succeed(b))
	require.ErrorIs(t, fail(b), errBoom)
	require.ErrorIs(t, fail(b), errBoom)

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(2), b.Counts().ConsecutiveFailures)
}

func TestRecoversThroughProbe(t *testing.T) {
	b, clock := newTestBreaker(Settings{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	require.ErrorIs(t, fail(b), errBoom)
	require.Equal(t, StateOpen, b.State())

	*clock = clock.Add(11 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, succeed(b))
	assert.Equal(t, StateClosed, b.State())
}

func TestProbeFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(Settings{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	require.ErrorIs(t, fail(b), errBoom)
	*clock = clock.Add(11 * time.Second)
	require.Equal(t, StateHalfOpen, b.State())

	require.ErrorIs(t, fail(b), errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestHalfOpenProbeBudget(t *testing.T) {
	b, clock := newTestBreaker(Settings{
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	require.ErrorIs(t, fail(b), errBoom)
	*clock = clock.Add(11 * time.Second)
	require.Equal(t, StateHalfOpen, b.State())

	// First probe slot is taken and never completes; the second
	// request must be refused.
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		b.Execute(func() (interface{}, error) {
			close(done)
			<-release
			return "ok", nil
		})
	}()
	<-done

	_, err := b.Execute(func() (interface{}, error) { return "ok", nil })
	assert.ErrorIs(t, err, ErrTooManyRequests)
	close(release)
}

func TestIntervalClearsClosedCounts(t *testing.T) {
	b, clock := newTestBreaker(Settings{
		Interval:    time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	require.ErrorIs(t, fail(b), errBoom)
	require.ErrorIs(t, fail(b), errBoom)

	*clock = clock.Add(2 * time.Minute)
	require.ErrorIs(t, fail(b), errBoom)

	// The two old failures aged out; one fresh failure does not trip.
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(1), b.Counts().ConsecutiveFailures)
}

func TestOnStateChangeNotified(t *testing.T) {
	var transitions []string
	cfg := Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+">"+to.String())
		},
	}
	b, _ := newTestBreaker(cfg)

	require.ErrorIs(t, fail(b), errBoom)
	assert.Equal(t, []string{"test:closed>open"}, transitions)
}

func TestPanicCountsAsFailure(t *testing.T) {
	b, _ := newTestBreaker(Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	assert.Panics(t, func() {
		b.Execute(func() (interface{}, error) { panic("bad") })
	})
	assert.Equal(t, StateOpen, b.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}
