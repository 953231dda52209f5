package discovery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"callgate/internal/domain"
)

// AllowList holds the preference-ordered components that may be chosen as
// the default for each role. Order in the file is preference order.
type AllowList struct {
	Dial     []domain.ComponentName
	InCallUI []domain.ComponentName
}

type allowListFile struct {
	DialDefaultComponents   []string `yaml:"dial_default_components"`
	InCallDefaultComponents []string `yaml:"incall_default_components"`
}

// LoadAllowList reads the packaged allow-list file. Component entries use the
// flattened "package/class" form; a malformed entry fails the whole load so a
// bad config cannot silently shrink the list.
func LoadAllowList(path string) (AllowList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AllowList{}, fmt.Errorf("read allow-list: %w", err)
	}
	return ParseAllowList(raw)
}

// ParseAllowList decodes allow-list YAML.
func ParseAllowList(raw []byte) (AllowList, error) {
	var file allowListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return AllowList{}, fmt.Errorf("decode allow-list: %w", err)
	}

	var list AllowList
	var err error
	if list.Dial, err = unflattenAll(file.DialDefaultComponents); err != nil {
		return AllowList{}, fmt.Errorf("dial_default_components: %w", err)
	}
	if list.InCallUI, err = unflattenAll(file.InCallDefaultComponents); err != nil {
		return AllowList{}, fmt.Errorf("incall_default_components: %w", err)
	}
	return list, nil
}

func unflattenAll(entries []string) ([]domain.ComponentName, error) {
	components := make([]domain.ComponentName, 0, len(entries))
	for _, entry := range entries {
		component, err := domain.UnflattenComponentName(entry)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, nil
}

// ForTag returns the allow-list for a discovery tag.
func (l AllowList) ForTag(tag Tag) []domain.ComponentName {
	switch tag {
	case TagDial:
		return l.Dial
	case TagInCallUI:
		return l.InCallUI
	default:
		return nil
	}
}
