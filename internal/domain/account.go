package domain

// Capability is a bitmask of account capability flags.
type Capability uint32

const (
	// CapabilitySIMSubscription marks an account backed by a physical or
	// virtual SIM subscription.
	CapabilitySIMSubscription Capability = 1 << iota

	// CapabilityCallProvider marks an account that can place and receive
	// ordinary calls.
	CapabilityCallProvider

	// CapabilityPlaceEmergencyCalls marks an account usable for emergency
	// dialing.
	CapabilityPlaceEmergencyCalls
)

// Has reports whether all the given capability bits are set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// AccountHandle is the opaque identifier of a registered calling account:
// the owning component plus a short discriminator. Equality is structural.
type AccountHandle struct {
	Component ComponentName
	ID        string
}

// String renders the handle in a stable, human-readable form.
func (h AccountHandle) String() string {
	return h.Component.Flatten() + "#" + h.ID
}

// Account describes one registered calling account. It is created by the
// account-registration subsystem; this service only reads it.
type Account struct {
	Handle       AccountHandle `json:"handle"`
	Label        string        `json:"label,omitempty"`
	Capabilities Capability    `json:"capabilities"`
	Enabled      bool          `json:"enabled"`
}

// HasCapabilities reports whether the account carries all given flags.
func (a Account) HasCapabilities(want Capability) bool {
	return a.Capabilities.Has(want)
}
