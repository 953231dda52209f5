package domain

import (
	"fmt"
	"strings"
)

// ComponentName identifies the component that owns a calling account, split
// into the owning package namespace and the class implementing the service.
// It is an immutable value; equality is structural.
type ComponentName struct {
	Package string
	Class   string
}

// NewComponentName builds a component name from its parts.
func NewComponentName(pkg, class string) ComponentName {
	return ComponentName{Package: pkg, Class: class}
}

// Flatten renders the component as "package/class", the form used in
// allow-list files and API paths.
func (c ComponentName) Flatten() string {
	return c.Package + "/" + c.Class
}

// IsZero reports whether the component name carries no identity.
func (c ComponentName) IsZero() bool {
	return c.Package == "" && c.Class == ""
}

// UnflattenComponentName parses the "package/class" form produced by Flatten.
func UnflattenComponentName(s string) (ComponentName, error) {
	pkg, class, ok := strings.Cut(s, "/")
	if !ok || pkg == "" || class == "" {
		return ComponentName{}, fmt.Errorf("malformed component name %q", s)
	}
	return ComponentName{Package: pkg, Class: class}, nil
}
