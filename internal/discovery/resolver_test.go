package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
)

type staticSource struct {
	installed map[Tag][]domain.ComponentName
	err       error
}

func (s *staticSource) Resolve(_ context.Context, tag Tag) ([]domain.ComponentName, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.installed[tag], nil
}

func component(pkg, class string) domain.ComponentName {
	return domain.ComponentName{Package: pkg, Class: class}
}

func TestResolver_Default(t *testing.T) {
	stockDialer := component("com.android.dialer", "DialtactsActivity")
	oemDialer := component("com.oem.dialer", "MainActivity")
	inCall := component("com.android.incallui", "InCallActivity")

	allow := AllowList{
		Dial:     []domain.ComponentName{oemDialer, stockDialer},
		InCallUI: []domain.ComponentName{inCall},
	}

	t.Run("preference order wins over install order", func(t *testing.T) {
		source := &staticSource{installed: map[Tag][]domain.ComponentName{
			TagDial: {stockDialer, oemDialer},
		}}
		resolver := NewResolver(source, allow)

		got, err := resolver.Default(context.Background(), TagDial)
		require.NoError(t, err)
		assert.Equal(t, oemDialer, got)
	})

	t.Run("falls through to later preference", func(t *testing.T) {
		source := &staticSource{installed: map[Tag][]domain.ComponentName{
			TagDial: {stockDialer},
		}}
		resolver := NewResolver(source, allow)

		got, err := resolver.Default(context.Background(), TagDial)
		require.NoError(t, err)
		assert.Equal(t, stockDialer, got)
	})

	t.Run("installed but not allow-listed is never chosen", func(t *testing.T) {
		source := &staticSource{installed: map[Tag][]domain.ComponentName{
			TagDial: {component("com.rogue.dialer", "Hijack")},
		}}
		resolver := NewResolver(source, allow)

		_, err := resolver.Default(context.Background(), TagDial)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("nothing installed", func(t *testing.T) {
		resolver := NewResolver(&staticSource{}, allow)

		_, err := resolver.Default(context.Background(), TagInCallUI)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("source failure propagates", func(t *testing.T) {
		boom := errors.New("package index unavailable")
		resolver := NewResolver(&staticSource{err: boom}, allow)

		_, err := resolver.Default(context.Background(), TagDial)
		assert.ErrorIs(t, err, boom)
	})
}

func TestParseAllowList(t *testing.T) {
	raw := []byte(`
dial_default_components:
  - com.oem.dialer/MainActivity
  - com.android.dialer/DialtactsActivity
incall_default_components:
  - com.android.incallui/InCallActivity
`)

	list, err := ParseAllowList(raw)
	require.NoError(t, err)

	require.Len(t, list.Dial, 2)
	assert.Equal(t, component("com.oem.dialer", "MainActivity"), list.Dial[0])
	assert.Equal(t, component("com.android.dialer", "DialtactsActivity"), list.Dial[1])
	require.Len(t, list.InCallUI, 1)
	assert.Equal(t, component("com.android.incallui", "InCallActivity"), list.InCallUI[0])
}

func TestParseAllowList_MalformedEntryFailsLoad(t *testing.T) {
	raw := []byte(`
dial_default_components:
  - not-a-component
`)

	_, err := ParseAllowList(raw)
	assert.Error(t, err)
}

func TestLoadAllowList_MissingFile(t *testing.T) {
	_, err := LoadAllowList("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestAllowList_ForTag_UnknownTagIsEmpty(t *testing.T) {
	list := AllowList{Dial: []domain.ComponentName{component("a", "b")}}
	assert.Nil(t, list.ForTag(Tag("bogus")))
}
