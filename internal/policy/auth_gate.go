// Package policy wires the authorization gate and the application handlers.
package policy

import (
	"context"
	"net/http"
	"time"

	"github.com/tsukino/go-hanbai/auth"
	"github.com/tsukino/go-hanbai/gate"
	"github.com/tsukino/go-hanbai/httpx"
	"gorm.io/gorm"
)

// AuthGate is the central authorization checkpoint: it resolves the acting
// user's profile (cached) and checks resource:action permissions.
type AuthGate struct {
	Gate          *gate.Gate[string]
	CacheResolver *gate.CachedResolver[string]
}

// NewAuthGate creates a gate backed by DB profile lookups with a TTL cache.
func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	cached := gate.NewCachedResolver[string](NewDBProfileResolver(db), cacheTTL)
	return &AuthGate{
		Gate:          gate.New[string](cached),
		CacheResolver: cached,
	}
}

// Can checks whether the current user may perform action on resourceType.
func (ag *AuthGate) Can(ctx context.Context, action gate.Action, resourceType string) bool {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return false
	}
	return ag.Gate.Can(ctx, userID, action, resourceType)
}

// IsAdmin reports whether the current user holds the superadmin permission.
func (ag *AuthGate) IsAdmin(ctx context.Context) bool {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return false
	}
	profile, err := ag.CacheResolver.Resolve(ctx, userID)
	if err != nil || profile == nil {
		return false
	}
	return profile.HasPermission(gate.PermissionSuperAdmin)
}

// InvalidateUser clears the profile cache for one user. Call it after the
// user's profile assignment changes.
func (ag *AuthGate) InvalidateUser(userID string) {
	ag.CacheResolver.Invalidate(userID)
}

// RequirePermission returns middleware that denies the request with 403
// unless the user's profile grants resourceType:action.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ag.Can(r.Context(), action, resourceType) {
				if httpx.WantsJSON(r) {
					httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that only admits superadmin users.
func (ag *AuthGate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ag.IsAdmin(r.Context()) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
