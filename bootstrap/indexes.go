package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the command layer relies on. The
// unique (post_id, user_id) index is what makes a like a set membership
// rather than a counter: a second insert for the same pair fails with a
// duplicate key error instead of creating a row.
func EnsureIndexes(db *mongo.Database) error {
	_, err := db.Collection("likes").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "post_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_post_user"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("profiles").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("accounts").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_account_username"),
		},
	)
	if err != nil {
		return err
	}

	// Newest-first feed reads.
	_, err = db.Collection("posts").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	)
	return err
}
