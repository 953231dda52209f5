package httptransport

import (
	"callgate/internal/domain"
	dErrors "callgate/pkg/domain-errors"
)

// AccountPayload is the wire form of a calling account.
type AccountPayload struct {
	ComponentPackage string `json:"component_package"`
	ComponentClass   string `json:"component_class"`
	HandleID         string `json:"handle_id"`
	Label            string `json:"label,omitempty"`
	Capabilities     uint32 `json:"capabilities"`
	Enabled          bool   `json:"enabled"`
}

// ToDomain validates the payload and converts it to a domain account.
func (p AccountPayload) ToDomain() (domain.Account, error) {
	if p.ComponentPackage == "" || p.ComponentClass == "" || p.HandleID == "" {
		return domain.Account{}, dErrors.New(dErrors.CodeInvalidInput,
			"component_package, component_class, and handle_id are required")
	}
	return domain.Account{
		Handle: domain.AccountHandle{
			Component: domain.NewComponentName(p.ComponentPackage, p.ComponentClass),
			ID:        p.HandleID,
		},
		Label:        p.Label,
		Capabilities: domain.Capability(p.Capabilities),
		Enabled:      p.Enabled,
	}, nil
}

// FromAccount converts a domain account to its wire form.
func FromAccount(a domain.Account) AccountPayload {
	return AccountPayload{
		ComponentPackage: a.Handle.Component.Package,
		ComponentClass:   a.Handle.Component.Class,
		HandleID:         a.Handle.ID,
		Label:            a.Label,
		Capabilities:     uint32(a.Capabilities),
		Enabled:          a.Enabled,
	}
}

// AccountListResponse wraps the ranked account list.
type AccountListResponse struct {
	Accounts []AccountPayload `json:"accounts"`
}

// ClassifyRequest asks for both emergency checks on one address.
type ClassifyRequest struct {
	Address string `json:"address"`
}

// ClassifyResponse carries both answers.
type ClassifyResponse struct {
	Local     bool `json:"local"`
	Potential bool `json:"potential"`
}
