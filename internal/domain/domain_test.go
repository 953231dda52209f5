package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentName_FlattenUnflattenRoundTrip(t *testing.T) {
	original := NewComponentName("com.android.phone", "com.android.services.telephony.TelephonyConnectionService")

	parsed, err := UnflattenComponentName(original.Flatten())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestUnflattenComponentName_Malformed(t *testing.T) {
	for _, input := range []string{"", "no-separator", "/class-only", "package-only/"} {
		t.Run(input, func(t *testing.T) {
			_, err := UnflattenComponentName(input)
			assert.Error(t, err)
		})
	}
}

func TestComponentName_IsZero(t *testing.T) {
	assert.True(t, ComponentName{}.IsZero())
	assert.False(t, NewComponentName("pkg", "cls").IsZero())
	assert.False(t, ComponentName{Package: "pkg"}.IsZero())
}

func TestSchemeSpecificPart(t *testing.T) {
	cases := map[string]string{
		"tel:911":            "911",
		"sip:911@carrier":    "911@carrier",
		"911":                "911",
		"":                   "",
		"tel:":               "",
		"tel:+1-555-0100":    "+1-555-0100",
		"voicemail:retrieve": "retrieve",
	}
	for input, want := range cases {
		assert.Equal(t, want, SchemeSpecificPart(input), "input %q", input)
	}
}

func TestCapability_Has(t *testing.T) {
	caps := CapabilitySIMSubscription | CapabilityCallProvider

	assert.True(t, caps.Has(CapabilitySIMSubscription))
	assert.True(t, caps.Has(CapabilitySIMSubscription|CapabilityCallProvider))
	assert.False(t, caps.Has(CapabilityPlaceEmergencyCalls))
	assert.False(t, caps.Has(CapabilityCallProvider|CapabilityPlaceEmergencyCalls))
}

func TestAccountHandle_String(t *testing.T) {
	handle := AccountHandle{
		Component: NewComponentName("com.example.voip", "com.example.voip.CallService"),
		ID:        "work",
	}
	assert.Equal(t, "com.example.voip/com.example.voip.CallService#work", handle.String())
}

func TestSubscription_Valid(t *testing.T) {
	assert.False(t, NoSubscription().Valid())
	assert.True(t, Subscription{ID: 7, Slot: 0}.Valid())

	// Slot alone does not make a subscription valid.
	assert.False(t, Subscription{ID: InvalidSubscriptionID, Slot: 1}.Valid())
}
