// Package ranking orders calling accounts for display and default selection.
// The order must be a strict total order so the upstream call manager can
// present a stable list: two runs over the same accounts always agree.
package ranking

import (
	"hash/fnv"
	"sort"
	"strings"

	"callgate/internal/domain"
)

// criterion compares two accounts on one key. Zero means "no preference,
// fall through to the next criterion".
type criterion func(a, b domain.Account, lookup domain.SubscriptionLookup) int

// Comparator precedence, evaluated left to right with early exit:
//  1. SIM-backed accounts before everything else.
//  2. Physical slot index ascending, only when both sides resolve to a
//     valid subscription. Asymmetric resolution falls through instead of
//     pushing the unresolved side either way; a test pins this behavior.
//  3. Owning component package, lexicographic.
//  4. Display label, lexicographic (absent label compares as empty).
//  5. Stable handle hash, then the handle string, so distinct accounts never
//     tie even when every semantic key matches.
var criteria = []criterion{
	bySIMCapability,
	bySlotIndex,
	byPackage,
	byLabel,
	byStableHash,
}

// Rank sorts accounts in place into the display/selection order. It never
// adds, removes, or mutates descriptors and has no failure mode; a nil
// lookup behaves as if no account resolves to a subscription.
func Rank(accounts []domain.Account, lookup domain.SubscriptionLookup) {
	if lookup == nil {
		lookup = func(domain.AccountHandle) domain.Subscription {
			return domain.NoSubscription()
		}
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return Compare(accounts[i], accounts[j], lookup) < 0
	})
}

// Compare applies the full criteria chain. Exposed so callers can rank
// without sorting (e.g. picking a single preferred account).
func Compare(a, b domain.Account, lookup domain.SubscriptionLookup) int {
	for _, c := range criteria {
		if r := c(a, b, lookup); r != 0 {
			return r
		}
	}
	return 0
}

func bySIMCapability(a, b domain.Account, _ domain.SubscriptionLookup) int {
	aSIM := a.HasCapabilities(domain.CapabilitySIMSubscription)
	bSIM := b.HasCapabilities(domain.CapabilitySIMSubscription)
	switch {
	case aSIM == bSIM:
		return 0
	case aSIM:
		return -1
	default:
		return 1
	}
}

func bySlotIndex(a, b domain.Account, lookup domain.SubscriptionLookup) int {
	subA := lookup(a.Handle)
	subB := lookup(b.Handle)
	// Slots are only comparable when both accounts resolve. One-sided
	// resolution is not a tie-break in either direction.
	if !subA.Valid() || !subB.Valid() {
		return 0
	}
	switch {
	case subA.Slot < subB.Slot:
		return -1
	case subA.Slot > subB.Slot:
		return 1
	default:
		return 0
	}
}

func byPackage(a, b domain.Account, _ domain.SubscriptionLookup) int {
	return strings.Compare(a.Handle.Component.Package, b.Handle.Component.Package)
}

func byLabel(a, b domain.Account, _ domain.SubscriptionLookup) int {
	return strings.Compare(a.Label, b.Label)
}

// byStableHash breaks remaining ties with an FNV-1a hash over the full
// descriptor identity. Unlike an in-memory identity hash it is reproducible
// across process restarts, so repeated rankings of reconstructed descriptor
// lists agree. The final handle-string comparison keeps the order total even
// under hash collision.
func byStableHash(a, b domain.Account, _ domain.SubscriptionLookup) int {
	ha := descriptorHash(a)
	hb := descriptorHash(b)
	switch {
	case ha < hb:
		return -1
	case ha > hb:
		return 1
	default:
		return strings.Compare(a.Handle.String()+"\x00"+a.Label, b.Handle.String()+"\x00"+b.Label)
	}
}

func descriptorHash(a domain.Account) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(a.Handle.Component.Package))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(a.Handle.Component.Class))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(a.Handle.ID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(a.Label))
	return h.Sum64()
}
