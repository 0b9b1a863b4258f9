package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/model"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("profiles")}
}

func (r *ProfileRepository) Insert(ctx context.Context, p model.Profile) error {
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// Get returns nil when no profile exists for the id.
func (r *ProfileRepository) Get(ctx context.Context, id bson.ObjectID) (*model.Profile, error) {
	var p model.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UsernamesByIDs resolves account ids to usernames in one query; ids with
// no profile are simply absent from the map.
func (r *ProfileRepository) UsernamesByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]string, error) {
	names := make(map[bson.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []model.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	for _, p := range profiles {
		names[p.ID] = p.Username
	}
	return names, nil
}
