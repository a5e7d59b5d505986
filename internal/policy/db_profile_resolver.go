package policy

import (
	"context"
	"errors"

	"github.com/tsukino/go-hanbai/gate"
	"github.com/tsukino/go-hanbai/internal/models"
	"gorm.io/gorm"
)

// DBProfileResolver fetches user profiles from the database. It implements
// gate.ProfileResolver for string user IDs.
type DBProfileResolver struct {
	DB *gorm.DB
}

func NewDBProfileResolver(db *gorm.DB) *DBProfileResolver {
	return &DBProfileResolver{DB: db}
}

// Resolve loads the user's profile with its permissions preloaded.
// A missing user or an unassigned profile resolves to nil without error so
// the result is cacheable.
func (r *DBProfileResolver) Resolve(ctx context.Context, userID string) (gate.Profile, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Preload("Profile.Permissions").
		First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, nil
	}
	return &dbProfileAdapter{profile: user.Profile}, nil
}

// dbProfileAdapter exposes a models.Profile through the gate.Profile
// interface.
type dbProfileAdapter struct {
	profile *models.Profile
}

func (a *dbProfileAdapter) Name() string { return a.profile.Name }

func (a *dbProfileAdapter) Permissions() []gate.Permission {
	perms := make([]gate.Permission, len(a.profile.Permissions))
	for i, p := range a.profile.Permissions {
		perms[i] = gate.Permission(p.Code())
	}
	return perms
}

func (a *dbProfileAdapter) HasPermission(requested gate.Permission) bool {
	for _, p := range a.profile.Permissions {
		if gate.Permission(p.Code()).Matches(requested) {
			return true
		}
	}
	return false
}
