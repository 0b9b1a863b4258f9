package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like is keyed by (post_id, user_id); the unique index in bootstrap
// guarantees at most one per pair.
type Like struct {
	PostID    bson.ObjectID `json:"postId"    bson:"post_id"`
	UserID    bson.ObjectID `json:"userId"    bson:"user_id"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
