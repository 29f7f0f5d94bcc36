package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[string]*model.Profile),
	}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
	}
	return profile.Clone(), nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return goerr.New("profile user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.UserID] = profile.Clone()
	return nil
}
