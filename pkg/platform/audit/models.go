// Package audit captures structured events for routing decisions. Events are
// append-only and transport-agnostic so stores and sinks can fan out.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose. It drives
// retention and routing downstream.
type EventCategory string

const (
	// CategoryRouting covers account selection and emergency pre-screen
	// decisions, useful for debugging routing behavior.
	CategoryRouting EventCategory = "routing"

	// CategoryRegistry covers account registration and removal, which have
	// operational significance (who changed the registry, when).
	CategoryRegistry EventCategory = "registry"
)

// Event is emitted from domain logic to capture key actions.
//
// AddressHash carries a SHA-256 of the dialed address when an event concerns
// a classification; the raw address is never persisted.
type Event struct {
	Category    EventCategory `json:"category"`
	Timestamp   time.Time     `json:"timestamp"`
	Action      string        `json:"action"`
	Handle      string        `json:"handle,omitempty"`
	Decision    string        `json:"decision,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	RequestID   string        `json:"request_id,omitempty"`
	Actor       string        `json:"actor,omitempty"`
	AddressHash string        `json:"address_hash,omitempty"`
}
