package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	PostID    bson.ObjectID `json:"postId"    bson:"post_id"`
	AuthorID  bson.ObjectID `json:"authorId"  bson:"author_id"`
	Content   string        `json:"content"   bson:"content"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
