package emergency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callgate/internal/domain"
)

func TestDefaultAccount_Idempotent(t *testing.T) {
	first := DefaultAccount()
	second := DefaultAccount()

	assert.Equal(t, first, second, "fallback descriptor must be constant across calls")
}

func TestDefaultAccount_Capabilities(t *testing.T) {
	account := DefaultAccount()

	assert.True(t, account.HasCapabilities(domain.CapabilitySIMSubscription))
	assert.True(t, account.HasCapabilities(domain.CapabilityCallProvider))
	assert.True(t, account.HasCapabilities(domain.CapabilityPlaceEmergencyCalls))
	assert.True(t, account.Enabled)
	assert.Equal(t, "E", account.Handle.ID)
	assert.Equal(t, "E", account.Label)
}

func TestDefaultAccount_OwnedByTelephonyComponent(t *testing.T) {
	account := DefaultAccount()

	assert.True(t, IsTelephonyComponent(account.Handle.Component))
}

func TestIsTelephonyComponent(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		c := domain.NewComponentName(
			"com.android.phone",
			"com.android.services.telephony.TelephonyConnectionService",
		)
		assert.True(t, IsTelephonyComponent(c))
	})

	t.Run("no partial matches", func(t *testing.T) {
		cases := []domain.ComponentName{
			domain.NewComponentName("com.android.phone", "SomeOtherService"),
			domain.NewComponentName("com.example.phone", "com.android.services.telephony.TelephonyConnectionService"),
			domain.NewComponentName("com.android.phone", ""),
			{},
		}
		for _, c := range cases {
			assert.False(t, IsTelephonyComponent(c), "component %q", c.Flatten())
		}
	})
}
