package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Post struct {
	ID         bson.ObjectID `json:"id"         bson:"_id,omitempty"`
	AuthorID   bson.ObjectID `json:"authorId"   bson:"author_id"`
	Content    string        `json:"content"    bson:"content"`
	Visibility string        `json:"visibility" bson:"visibility"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"created_at"`
}

// PostWithMeta is one row of the feed read: the post joined with its
// author profile, its like set and its comment sequence (creation order).
// Author is nil when the profile row is missing.
type PostWithMeta struct {
	Post     `bson:",inline"`
	Author   *Profile  `bson:"author"`
	Likes    []Like    `bson:"likes"`
	Comments []Comment `bson:"comments"`
}
