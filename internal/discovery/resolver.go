// Package discovery resolves the default component for a UI role (dialing,
// in-call screen) by intersecting what the platform reports as installed
// with a packaged allow-list. The allow-list is the trust boundary: an
// installed component that is not listed is never chosen.
package discovery

import (
	"context"
	"log/slog"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
)

// Tag names a discoverable role.
type Tag string

const (
	TagDial     Tag = "dial"
	TagInCallUI Tag = "incall_ui"
)

// CandidateSource reports the components installed for a role. External;
// typically backed by the platform package index.
type CandidateSource interface {
	Resolve(ctx context.Context, tag Tag) ([]domain.ComponentName, error)
}

// Resolver picks the default component for a tag.
type Resolver struct {
	source CandidateSource
	allow  AllowList
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver wires a resolver over the candidate source and allow-list.
func NewResolver(source CandidateSource, allow AllowList, opts ...ResolverOption) *Resolver {
	r := &Resolver{source: source, allow: allow}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the first allow-listed component that is installed for the
// tag, in allow-list preference order. sentinel.ErrNotFound when the
// intersection is empty.
func (r *Resolver) Default(ctx context.Context, tag Tag) (domain.ComponentName, error) {
	installed, err := r.source.Resolve(ctx, tag)
	if err != nil {
		return domain.ComponentName{}, err
	}

	installedSet := make(map[domain.ComponentName]struct{}, len(installed))
	for _, c := range installed {
		installedSet[c] = struct{}{}
	}

	for _, preferred := range r.allow.ForTag(tag) {
		if _, ok := installedSet[preferred]; ok {
			if r.logger != nil {
				r.logger.DebugContext(ctx, "default component resolved",
					"tag", string(tag),
					"component", preferred.Flatten(),
				)
			}
			return preferred, nil
		}
	}

	if r.logger != nil {
		r.logger.WarnContext(ctx, "no allow-listed component installed",
			"tag", string(tag),
			"installed", len(installed),
		)
	}
	return domain.ComponentName{}, sentinel.ErrNotFound
}
