// Package emergency synthesizes the fallback emergency calling identity and
// consults the external emergency-number classification authority.
package emergency

import "callgate/internal/domain"

// The one system telephony component this service recognizes as trusted.
// Accounts owned by it get system-level treatment (emergency calls, audio
// focus) that third-party calling services never do.
const (
	telephonyPackageName     = "com.android.phone"
	pstnCallServiceClassName = "com.android.services.telephony.TelephonyConnectionService"
)

// defaultEmergencyHandle is the fixed handle of the synthesized fallback
// account. The "E" discriminator is deliberate: the descriptor is never meant
// for user-facing display, so the label is not localized or descriptive.
var defaultEmergencyHandle = domain.AccountHandle{
	Component: domain.ComponentName{
		Package: telephonyPackageName,
		Class:   pstnCallServiceClassName,
	},
	ID: "E",
}

// DefaultAccount returns the fallback account the call manager routes
// emergency calls through in the rare case that telephony has not registered
// any accounts yet. The result is constant across calls: same handle, same
// capability set, always enabled. Callers must not cache it as if it were a
// registered account.
func DefaultAccount() domain.Account {
	return domain.Account{
		Handle: defaultEmergencyHandle,
		Label:  "E",
		Capabilities: domain.CapabilitySIMSubscription |
			domain.CapabilityCallProvider |
			domain.CapabilityPlaceEmergencyCalls,
		Enabled: true,
	}
}

// IsTelephonyComponent reports whether the component is the system telephony
// connection service. Structural equality against the fixed constant; no
// partial matches.
func IsTelephonyComponent(c domain.ComponentName) bool {
	return c == domain.ComponentName{
		Package: telephonyPackageName,
		Class:   pstnCallServiceClassName,
	}
}
