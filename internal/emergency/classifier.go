package emergency

import (
	"context"
	"errors"
	"time"
)

// ErrClassifierUnavailable indicates the classification authority could not
// be reached or is not configured. The proxy collapses it to a negative
// classification.
var ErrClassifierUnavailable = errors.New("emergency classifier unavailable")

// Classifier is the port to the external emergency-number classification
// authority. Implementations must be stateless between calls; each call is an
// independent best-effort round trip.
type Classifier interface {
	// IsLocalEmergencyNumber reports whether the address is an emergency
	// number in the current locale.
	IsLocalEmergencyNumber(ctx context.Context, address string) (bool, error)

	// IsPotentialLocalEmergencyNumber reports whether the address could
	// resolve to an emergency number once dialed (e.g. prefix matches).
	IsPotentialLocalEmergencyNumber(ctx context.Context, address string) (bool, error)

	// Health checks whether the authority is reachable.
	Health(ctx context.Context) error
}

// Unavailable is the Classifier used when no authority is configured. Every
// query fails with ErrClassifierUnavailable, which the proxy turns into the
// fail-closed negative.
type Unavailable struct{}

func (Unavailable) IsLocalEmergencyNumber(context.Context, string) (bool, error) {
	return false, ErrClassifierUnavailable
}

func (Unavailable) IsPotentialLocalEmergencyNumber(context.Context, string) (bool, error) {
	return false, ErrClassifierUnavailable
}

func (Unavailable) Health(context.Context) error {
	return ErrClassifierUnavailable
}

// StaticClassifier answers from fixed tables with a configurable latency to
// mimic real-world calls. Used in tests and local development.
type StaticClassifier struct {
	Local     map[string]bool
	Potential map[string]bool
	Latency   time.Duration
}

func (c StaticClassifier) IsLocalEmergencyNumber(ctx context.Context, address string) (bool, error) {
	time.Sleep(c.Latency)
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.Local[address], nil
}

func (c StaticClassifier) IsPotentialLocalEmergencyNumber(ctx context.Context, address string) (bool, error) {
	time.Sleep(c.Latency)
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.Potential[address], nil
}

func (c StaticClassifier) Health(context.Context) error {
	return nil
}
