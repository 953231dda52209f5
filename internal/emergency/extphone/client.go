// Package extphone is the HTTP client for the external emergency-number
// classification authority, looked up under the well-known service name
// "extphone". The client implements the emergency.Classifier port; all
// fail-closed policy lives in the proxy, so this client reports failures
// honestly and lets the proxy absorb them.
package extphone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"callgate/internal/emergency"
	"callgate/pkg/platform/circuit"
)

// ServiceName is the fixed name the authority is published under.
const ServiceName = "extphone"

// ErrorCategory normalizes authority failures for logs and metrics. The
// caller-visible behavior is identical for every category.
type ErrorCategory string

const (
	ErrorTimeout          ErrorCategory = "timeout"
	ErrorOutage           ErrorCategory = "outage"
	ErrorBadData          ErrorCategory = "bad_data"
	ErrorContractMismatch ErrorCategory = "contract_mismatch"
	ErrorCircuitOpen      ErrorCategory = "circuit_open"
)

// Error wraps an authority failure with its category. It unwraps to
// emergency.ErrClassifierUnavailable so callers can treat every variant as
// "could not consult the authority".
type Error struct {
	Category ErrorCategory
	cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s authority %s: %v", ServiceName, e.Category, e.cause)
}

func (e *Error) Unwrap() error { return emergency.ErrClassifierUnavailable }

func newError(category ErrorCategory, cause error) *Error {
	return &Error{Category: category, cause: cause}
}

// Client queries the authority over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	breaker  *circuit.Breaker
	cooldown time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout bounds each authority round trip.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.http.Timeout = d }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) { cl.breaker = b }
}

// WithCooldown sets how long an open circuit waits between probe attempts.
func WithCooldown(d time.Duration) Option {
	return func(cl *Client) { cl.cooldown = d }
}

// New creates a client for the authority at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 2 * time.Second},
		breaker:  circuit.New(ServiceName, circuit.WithFailureThreshold(5)),
		cooldown: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// allowAttempt gates calls while the breaker is open: one probe per cooldown
// window, everything else short-circuits. Dial-time lookups are frequent, so
// a dead authority must not add a transport timeout to every dial string.
func (c *Client) allowAttempt() bool {
	if !c.breaker.IsOpen() {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Before(c.retryAt) {
		return false
	}
	c.retryAt = now.Add(c.cooldown)
	return true
}

// recordFailure counts a failed round trip and, when it trips the breaker,
// starts the first cooldown window.
func (c *Client) recordFailure() {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.mu.Lock()
		c.retryAt = time.Now().Add(c.cooldown)
		c.mu.Unlock()
	}
}

type classifyResponse struct {
	Address string `json:"address"`
	Match   bool   `json:"match"`
}

// IsLocalEmergencyNumber implements emergency.Classifier.
func (c *Client) IsLocalEmergencyNumber(ctx context.Context, address string) (bool, error) {
	return c.classify(ctx, address, false)
}

// IsPotentialLocalEmergencyNumber implements emergency.Classifier.
func (c *Client) IsPotentialLocalEmergencyNumber(ctx context.Context, address string) (bool, error) {
	return c.classify(ctx, address, true)
}

// Health implements emergency.Classifier.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return newError(ErrorBadData, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return newError(ErrorOutage, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return newError(ErrorOutage, fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

func (c *Client) classify(ctx context.Context, address string, potential bool) (bool, error) {
	if !c.allowAttempt() {
		return false, newError(ErrorCircuitOpen, errors.New("too many consecutive failures"))
	}

	q := url.Values{}
	q.Set("address", address)
	if potential {
		q.Set("potential", "true")
	}
	endpoint := c.baseURL + "/v1/numbers/classify?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, newError(ErrorBadData, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordFailure()
		if errors.Is(err, context.DeadlineExceeded) {
			return false, newError(ErrorTimeout, err)
		}
		return false, newError(ErrorOutage, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 500:
		c.recordFailure()
		return false, newError(ErrorOutage, fmt.Errorf("status %d", resp.StatusCode))
	default:
		// 4xx means we are speaking a different contract than the authority.
		c.recordFailure()
		return false, newError(ErrorContractMismatch, fmt.Errorf("status %d", resp.StatusCode))
	}

	var body classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.recordFailure()
		return false, newError(ErrorBadData, err)
	}

	c.breaker.RecordSuccess()
	return body.Match, nil
}
