// Package access enforces capability checks for search-space-scoped
// resources. Every read or mutation on a podcast goes through the gate first.
package access

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/storage"
)

// Capability names a permission grant scoped to one search space.
type Capability string

const (
	CapPodcastsRead   Capability = "PODCASTS_READ"
	CapPodcastsCreate Capability = "PODCASTS_CREATE"
	CapPodcastsDelete Capability = "PODCASTS_DELETE"
)

// Gate answers allow/deny for (actor, search space, capability).
type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// Check returns nil when the user holds the capability in the search space,
// a permission error with denyMessage otherwise. Missing membership is a
// denial, not a not-found: the caller resolves record existence first.
func (g *Gate) Check(ctx context.Context, userID, searchSpaceID uint, capability Capability, denyMessage string) error {
	var membership storage.SearchSpaceMembership
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND search_space_id = ?", userID, searchSpaceID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformerrors.New(platformerrors.KindPermission, "access.check", denyMessage)
		}
		return platformerrors.Wrap(platformerrors.KindStorage, "access.check",
			"Database error occurred while checking permissions", err)
	}

	var grants []string
	if err := json.Unmarshal(membership.Permissions, &grants); err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "access.check",
			"Database error occurred while checking permissions", err)
	}
	for _, grant := range grants {
		if grant == string(capability) {
			return nil
		}
	}
	return platformerrors.New(platformerrors.KindPermission, "access.check", denyMessage)
}
