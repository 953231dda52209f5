package discovery

import (
	"context"

	"callgate/internal/domain"
)

// AccountLister is the slice of the account registry discovery consults.
type AccountLister interface {
	List(ctx context.Context) ([]domain.Account, error)
}

// RegistryCandidates treats the account registry as the installed-component
// index: a component counts as installed when any registered account
// references it. The tag does not narrow the candidate set here; the
// allow-list does that per role.
type RegistryCandidates struct {
	lister AccountLister
}

func NewRegistryCandidates(lister AccountLister) *RegistryCandidates {
	return &RegistryCandidates{lister: lister}
}

func (s *RegistryCandidates) Resolve(ctx context.Context, _ Tag) ([]domain.ComponentName, error) {
	accounts, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.ComponentName]struct{}, len(accounts))
	components := make([]domain.ComponentName, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := seen[a.Handle.Component]; ok {
			continue
		}
		seen[a.Handle.Component] = struct{}{}
		components = append(components, a.Handle.Component)
	}
	return components, nil
}
