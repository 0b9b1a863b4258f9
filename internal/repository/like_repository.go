package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/model"
)

type LikeRepository struct {
	col *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{col: db.Collection("likes")}
}

// Insert adds the (post, user) like. A duplicate key (11000) from the
// unique index means the pair already exists; reported as dup, not error.
func (r *LikeRepository) Insert(ctx context.Context, postID, userID bson.ObjectID) (dup bool, err error) {
	_, err = r.col.InsertOne(ctx, model.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		return false, nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true, nil
	}
	return false, err
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID bson.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	return err
}
