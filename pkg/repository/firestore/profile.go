package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const profileCollection = "profiles"

// profileDoc is the Firestore document representation of model.Profile
type profileDoc struct {
	UserID         string   `firestore:"UserID"`
	Interests      []string `firestore:"Interests"`
	EducationLevel string   `firestore:"EducationLevel"`
	Skills         []string `firestore:"Skills"`
	Locations      []string `firestore:"Locations"`
}

type profileRepository struct {
	client *firestore.Client
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(profileCollection)
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrNotFound, "empty user ID")
	}

	doc, err := r.collection().Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("userID", userID))
	}

	return &model.Profile{
		UserID:         d.UserID,
		Interests:      d.Interests,
		EducationLevel: d.EducationLevel,
		Skills:         d.Skills,
		Locations:      d.Locations,
	}, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return goerr.New("profile user ID is required")
	}

	d := &profileDoc{
		UserID:         profile.UserID,
		Interests:      profile.Interests,
		EducationLevel: profile.EducationLevel,
		Skills:         profile.Skills,
		Locations:      profile.Locations,
	}

	if _, err := r.collection().Doc(profile.UserID).Set(ctx, d); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("userID", profile.UserID))
	}

	return nil
}
