// Package gate provides profile-based authorization for web applications.
// A Profile is a named set of "resource:action" permissions; the Gate
// resolves the acting subject to a profile and checks the requested
// permission against it. The package has no dependency on domain models
// and is generic over the subject type:
//   - Gate[string] for UUID-based user IDs
//   - Gate[uint] for numeric user IDs
//   - Gate[*Claims] for token-claims based auth
package gate

import "context"

// Gate is the central authorization checkpoint.
// U is the subject type (must be comparable for the zero-value check).
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// New creates a gate backed by the given profile resolver.
func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize checks whether the subject may perform action on resourceType.
// Returns ErrUnauthorized for a zero-value subject, a missing profile, or a
// profile that lacks the "resourceType:action" permission.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, action Action, resourceType string) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return ErrUnauthorized
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, subject U, action Action, resourceType string) bool {
	return g.Authorize(ctx, subject, action, resourceType) == nil
}
