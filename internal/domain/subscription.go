package domain

// Sentinels for accounts with no resolvable subscription.
const (
	InvalidSubscriptionID int64 = -1
	InvalidSlotIndex      int   = -1
)

// Subscription is the carrier subscription backing a SIM account, with the
// physical slot the SIM occupies.
type Subscription struct {
	ID   int64 `json:"id"`
	Slot int   `json:"slot"`
}

// Valid reports whether the subscription resolves to a real carrier
// subscription.
func (s Subscription) Valid() bool {
	return s.ID != InvalidSubscriptionID
}

// NoSubscription is returned by lookups for accounts that are not backed by
// any carrier subscription.
func NoSubscription() Subscription {
	return Subscription{ID: InvalidSubscriptionID, Slot: InvalidSlotIndex}
}

// SubscriptionLookup maps an account handle to its carrier subscription.
// Implementations must be total: an unknown handle yields NoSubscription(),
// never an error. The lookup is supplied per call and never cached here.
type SubscriptionLookup func(AccountHandle) Subscription
