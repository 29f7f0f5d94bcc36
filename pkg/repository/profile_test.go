package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"github.com/pathlight-lab/pathlight/pkg/repository/firestore"
	"github.com/pathlight-lab/pathlight/pkg/repository/memory"
)

func runProfileRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put stores and Get retrieves profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
		profile := &model.Profile{
			UserID:         userID,
			Interests:      []string{"computer science", "music"},
			EducationLevel: "undergraduate",
			Skills:         []string{"python", "writing"},
			Locations:      []string{"nairobi"},
		}

		gt.NoError(t, repo.Profile().Put(ctx, profile)).Required()

		retrieved, err := repo.Profile().Get(ctx, userID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.UserID).Equal(userID)
		gt.Array(t, retrieved.Interests).Length(2)
		gt.Value(t, retrieved.EducationLevel).Equal("undergraduate")
		gt.Array(t, retrieved.Skills).Length(2)
		gt.Array(t, retrieved.Locations).Length(1)
	})

	t.Run("Get returns ErrNotFound for unknown user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Profile().Get(ctx, fmt.Sprintf("missing-%d", time.Now().UnixNano()))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("Put replaces existing profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
		gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
			UserID:    userID,
			Interests: []string{"arts"},
		})).Required()

		gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
			UserID:         userID,
			Interests:      []string{"technology"},
			EducationLevel: "masters",
		})).Required()

		retrieved, err := repo.Profile().Get(ctx, userID)
		gt.NoError(t, err).Required()

		gt.Array(t, retrieved.Interests).Length(1)
		gt.Value(t, retrieved.Interests[0]).Equal("technology")
		gt.Value(t, retrieved.EducationLevel).Equal("masters")
	})
}

func TestProfileRepository_Memory(t *testing.T) {
	runProfileRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestProfileRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runProfileRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
