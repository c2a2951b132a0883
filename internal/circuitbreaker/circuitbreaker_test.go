package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New(cfg)
	cb.now = clock.Now
	return cb, clock
}

var errDependency = errors.New("dependency down")

func fail() error    { return errDependency }
func succeed() error { return nil }

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Name: "test", FailureThreshold: 2, SuccessThreshold: 2, Timeout: time.Minute}

	tests := []struct {
		name  string
		steps func(t *testing.T, cb *CircuitBreaker, clock *fakeClock)
		want  State
	}{
		{
			name: "stays closed below threshold",
			steps: func(t *testing.T, cb *CircuitBreaker, _ *fakeClock) {
				assert.ErrorIs(t, cb.Execute(ctx, fail), errDependency)
			},
			want: StateClosed,
		},
		{
			name: "success resets failure count",
			steps: func(t *testing.T, cb *CircuitBreaker, _ *fakeClock) {
				_ = cb.Execute(ctx, fail)
				require.NoError(t, cb.Execute(ctx, succeed))
				_ = cb.Execute(ctx, fail)
			},
			want: StateClosed,
		},
		{
			name: "opens at threshold and rejects calls",
			steps: func(t *testing.T, cb *CircuitBreaker, _ *fakeClock) {
				_ = cb.Execute(ctx, fail)
				_ = cb.Execute(ctx, fail)
				called := false
				err := cb.Execute(ctx, func() error { called = true; return nil })
				assert.ErrorIs(t, err, ErrCircuitOpen)
				assert.False(t, called)
			},
			want: StateOpen,
		},
		{
			name: "half-opens after timeout",
			steps: func(t *testing.T, cb *CircuitBreaker, clock *fakeClock) {
				_ = cb.Execute(ctx, fail)
				_ = cb.Execute(ctx, fail)
				clock.Advance(time.Minute)
				require.NoError(t, cb.Execute(ctx, succeed))
			},
			want: StateHalfOpen,
		},
		{
			name: "closes after enough half-open successes",
			steps: func(t *testing.T, cb *CircuitBreaker, clock *fakeClock) {
				_ = cb.Execute(ctx, fail)
				_ = cb.Execute(ctx, fail)
				clock.Advance(time.Minute)
				require.NoError(t, cb.Execute(ctx, succeed))
				require.NoError(t, cb.Execute(ctx, succeed))
			},
			want: StateClosed,
		},
		{
			name: "half-open failure reopens",
			steps: func(t *testing.T, cb *CircuitBreaker, clock *fakeClock) {
				_ = cb.Execute(ctx, fail)
				_ = cb.Execute(ctx, fail)
				clock.Advance(time.Minute)
				assert.ErrorIs(t, cb.Execute(ctx, fail), errDependency)
				assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitOpen)
			},
			want: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(cfg)
			tt.steps(t, cb, clock)
			assert.Equal(t, tt.want, cb.State())
		})
	}
}

func TestCircuitBreaker_CanceledContextIsNotAFailure(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "ctx", FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, func() error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
}

func TestExecuteWithResult(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "result", FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})
	ctx := context.Background()

	got, err := ExecuteWithResult(ctx, cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = ExecuteWithResult(ctx, cb, func() (int, error) { return 0, errDependency })
	assert.ErrorIs(t, err, errDependency)

	got, err = ExecuteWithResult(ctx, cb, func() (int, error) { return 7, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, got)
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Name:             "notify",
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Second,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.Advance(time.Second)
	_ = cb.Execute(ctx, succeed)

	assert.Equal(t, []string{
		"notify:closed->open",
		"notify:open->half-open",
		"notify:half-open->closed",
	}, transitions)
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "stats", FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Minute})
	_ = cb.Execute(context.Background(), fail)

	stats := cb.GetStats()
	assert.Equal(t, "stats", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, 1, stats.FailureCount)
	assert.True(t, stats.IsHealthy)
	assert.False(t, stats.LastFailure.IsZero())
	assert.False(t, cb.IsOpen())
}

func TestNew_NormalizesThresholds(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "zero"})
	_ = cb.Execute(context.Background(), fail)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb := New(Config{Name: "concurrent", FailureThreshold: 1000, SuccessThreshold: 1, Timeout: time.Minute})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = cb.Execute(context.Background(), fail)
				return
			}
			_ = cb.Execute(context.Background(), succeed)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, StateClosed, cb.State())
}
