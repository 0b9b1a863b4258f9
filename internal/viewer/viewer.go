package viewer

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/internal/repository"
)

var ErrNoProfile = errors.New("viewer has no profile")

// Viewer is the identity every command and feed read runs against. It is
// built per request and passed explicitly instead of being held as
// ambient state, so the core stays deterministic under test.
type Viewer struct {
	ID       bson.ObjectID `json:"id"`
	Username string        `json:"username"`
	Team     string        `json:"team"`
}

func (v Viewer) Zero() bool {
	return v.ID.IsZero()
}

// Build loads the viewer's profile. A signed-in account without a profile
// row cannot view the feed; team membership is read fresh on every call
// rather than cached with the session.
func Build(ctx context.Context, profiles *repository.ProfileRepository, userID bson.ObjectID) (Viewer, error) {
	p, err := profiles.Get(ctx, userID)
	if err != nil {
		return Viewer{}, err
	}
	if p == nil {
		return Viewer{}, ErrNoProfile
	}
	return Viewer{ID: p.ID, Username: p.Username, Team: p.Team}, nil
}
