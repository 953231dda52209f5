package extphone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callgate/internal/emergency"
	"callgate/pkg/platform/circuit"
)

func authorityStub(t *testing.T, local map[string]bool, potential map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, "/v1/numbers/classify", r.URL.Path)
		address := r.URL.Query().Get("address")
		table := local
		if r.URL.Query().Get("potential") == "true" {
			table = potential
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"` + address + `","match":` + boolStr(table[address]) + `}`))
	}))
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestClient_Classify(t *testing.T) {
	srv := authorityStub(t,
		map[string]bool{"911": true},
		map[string]bool{"911": true, "91": true},
	)
	defer srv.Close()

	client := New(srv.URL)
	ctx := context.Background()

	local, err := client.IsLocalEmergencyNumber(ctx, "911")
	require.NoError(t, err)
	assert.True(t, local)

	local, err = client.IsLocalEmergencyNumber(ctx, "555-1234")
	require.NoError(t, err)
	assert.False(t, local)

	potential, err := client.IsPotentialLocalEmergencyNumber(ctx, "91")
	require.NoError(t, err)
	assert.True(t, potential)

	assert.NoError(t, client.Health(ctx))
}

func TestClient_ServerErrorIsOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.IsLocalEmergencyNumber(context.Background(), "911")

	require.Error(t, err)
	assert.ErrorIs(t, err, emergency.ErrClassifierUnavailable)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorOutage, e.Category)
}

func TestClient_ClientErrorIsContractMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.IsLocalEmergencyNumber(context.Background(), "911")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorContractMismatch, e.Category)
}

func TestClient_MalformedBodyIsBadData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.IsLocalEmergencyNumber(context.Background(), "911")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorBadData, e.Category)
}

func TestClient_UnreachableAuthority(t *testing.T) {
	// Port from a server that is already closed: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := New(addr)
	_, err := client.IsLocalEmergencyNumber(context.Background(), "911")

	require.Error(t, err)
	assert.ErrorIs(t, err, emergency.ErrClassifierUnavailable)
}

func TestClient_CircuitOpensAndShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL,
		WithBreaker(circuit.New(ServiceName, circuit.WithFailureThreshold(2))),
		WithCooldown(time.Hour),
	)
	ctx := context.Background()

	// Two failures trip the breaker and start the cooldown window; the next
	// call is short-circuited without touching the wire.
	_, err := client.IsLocalEmergencyNumber(ctx, "911")
	require.Error(t, err)
	_, err = client.IsLocalEmergencyNumber(ctx, "911")
	require.Error(t, err)

	_, err = client.IsLocalEmergencyNumber(ctx, "911")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorCircuitOpen, e.Category)
	assert.ErrorIs(t, err, emergency.ErrClassifierUnavailable)
}

func TestClient_ImplementsClassifierPort(t *testing.T) {
	var _ emergency.Classifier = New("http://localhost:0")
}

func TestError_Unwrap(t *testing.T) {
	err := newError(ErrorOutage, errors.New("boom"))
	assert.True(t, errors.Is(err, emergency.ErrClassifierUnavailable))
}
