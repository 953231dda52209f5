package emergency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// failingClassifier simulates a transport-level failure on every call.
type failingClassifier struct {
	err error
}

func (f failingClassifier) IsLocalEmergencyNumber(context.Context, string) (bool, error) {
	return false, f.err
}

func (f failingClassifier) IsPotentialLocalEmergencyNumber(context.Context, string) (bool, error) {
	return false, f.err
}

func (f failingClassifier) Health(context.Context) error { return f.err }

func TestProxy_ConfirmedPositive(t *testing.T) {
	proxy := NewProxy(StaticClassifier{
		Local:     map[string]bool{"911": true},
		Potential: map[string]bool{"911": true, "91": true},
	})

	ctx := context.Background()
	assert.True(t, proxy.IsLocalEmergencyNumber(ctx, "911"))
	assert.True(t, proxy.IsPotentialLocalEmergencyNumber(ctx, "91"))
}

func TestProxy_NegativeForOrdinaryNumber(t *testing.T) {
	proxy := NewProxy(StaticClassifier{
		Local: map[string]bool{"911": true},
	})

	assert.False(t, proxy.IsLocalEmergencyNumber(context.Background(), "555-1234"))
}

func TestProxy_FailClosed(t *testing.T) {
	ctx := context.Background()
	addresses := []string{"911", "112", "555-1234", ""}

	t.Run("transport failure", func(t *testing.T) {
		proxy := NewProxy(failingClassifier{err: errors.New("connection refused")})
		for _, addr := range addresses {
			assert.False(t, proxy.IsLocalEmergencyNumber(ctx, addr))
			assert.False(t, proxy.IsPotentialLocalEmergencyNumber(ctx, addr))
		}
	})

	t.Run("authority not configured", func(t *testing.T) {
		proxy := NewProxy(Unavailable{})
		for _, addr := range addresses {
			assert.False(t, proxy.IsLocalEmergencyNumber(ctx, addr))
			assert.False(t, proxy.IsPotentialLocalEmergencyNumber(ctx, addr))
		}
	})

	t.Run("nil classifier", func(t *testing.T) {
		proxy := NewProxy(nil)
		assert.False(t, proxy.IsLocalEmergencyNumber(ctx, "911"))
		assert.False(t, proxy.IsPotentialLocalEmergencyNumber(ctx, "911"))
	})
}

func TestProxy_CallsAreIndependent(t *testing.T) {
	// A failure on one call must not poison the next: the proxy holds no
	// state between calls.
	flaky := &sequenceClassifier{
		results: []sequenceResult{
			{err: errors.New("timeout")},
			{match: true},
		},
	}
	proxy := NewProxy(flaky)

	ctx := context.Background()
	assert.False(t, proxy.IsLocalEmergencyNumber(ctx, "911"))
	assert.True(t, proxy.IsLocalEmergencyNumber(ctx, "911"))
}

type sequenceResult struct {
	match bool
	err   error
}

type sequenceClassifier struct {
	results []sequenceResult
	calls   int
}

func (s *sequenceClassifier) next() (bool, error) {
	r := s.results[s.calls%len(s.results)]
	s.calls++
	return r.match, r.err
}

func (s *sequenceClassifier) IsLocalEmergencyNumber(context.Context, string) (bool, error) {
	return s.next()
}

func (s *sequenceClassifier) IsPotentialLocalEmergencyNumber(context.Context, string) (bool, error) {
	return s.next()
}

func (s *sequenceClassifier) Health(context.Context) error { return nil }
