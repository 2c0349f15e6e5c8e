package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(maxFailures, halfOpen int) (*CircuitBreaker, *time.Time) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       30 * time.Second,
		HalfOpenLimit: halfOpen,
	})
	cb.now = func() time.Time { return now }

	return cb, &now
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3, 1)

	assert.True(t, cb.Allow())

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State(), "a success resets the count")

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []bool
		wantState State
	}{
		{"probes succeed", []bool{true, true}, StateClosed},
		{"probe fails", []bool{true, false}, StateOpen},
		{"first probe fails", []bool{false}, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, now := newTestBreaker(1, 2)
			cb.RecordFailure()
			require.Equal(t, StateOpen, cb.State())

			*now = now.Add(29 * time.Second)
			assert.False(t, cb.Allow(), "still cooling down")

			*now = now.Add(time.Second)
			require.True(t, cb.Allow())
			assert.Equal(t, StateHalfOpen, cb.State())

			for _, ok := range tt.outcomes {
				if ok {
					cb.RecordSuccess()
				} else {
					cb.RecordFailure()
				}
			}

			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb, now := newTestBreaker(1, 2)
	cb.RecordFailure()
	*now = now.Add(time.Minute)

	assert.True(t, cb.Allow())
	assert.True(t, cb.Allow())
	assert.False(t, cb.Allow())

	cb.RecordSuccess()
	assert.True(t, cb.Allow(), "a finished probe frees a slot")
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb, now := newTestBreaker(1, 1)

	var transitions []string
	cb.OnStateChange(func(from, to State) {
		assert.Equal(t, to, cb.State(), "callback runs outside the lock")
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	cb.RecordFailure()
	*now = now.Add(time.Minute)
	cb.Allow()
	cb.RecordSuccess()

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 10})

	var wg sync.WaitGroup
	for i := range 1000 {
		wg.Go(func() {
			if !cb.Allow() {
				return
			}

			if i%2 == 0 {
				cb.RecordSuccess()
			} else {
				cb.RecordFailure()
			}
		})
	}

	wg.Wait()
	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}
