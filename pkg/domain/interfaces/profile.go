package interfaces

import (
	"context"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
)

// ProfileRepository provides access to stored user preferences.
// Get returns ErrNotFound (wrapped) when no profile exists; the engine
// treats that as "no personalization available", not as a failure.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Put(ctx context.Context, profile *model.Profile) error
}
