package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DisplayComment is a comment shaped for rendering. DisplayName is "You"
// for the viewer's own comments, the author's username otherwise.
type DisplayComment struct {
	ID          bson.ObjectID `json:"id"`
	DisplayName string        `json:"displayName"`
	Content     string        `json:"content"`
}

// DisplayPost is the feed's display model: the post plus everything the
// viewer needs to render it, derivable purely from the post, its likes,
// its comments and the viewer identity.
type DisplayPost struct {
	ID             bson.ObjectID    `json:"id"`
	AuthorID       bson.ObjectID    `json:"authorId"`
	AuthorUsername string           `json:"authorUsername"`
	AuthorTeam     string           `json:"authorTeam"`
	Content        string           `json:"content"`
	Visibility     string           `json:"visibility"`
	CreatedAt      time.Time        `json:"createdAt"`
	LikeCount      int              `json:"likeCount"`
	ViewerHasLiked bool             `json:"viewerHasLiked"`
	CommentCount   int              `json:"commentCount"`
	Comments       []DisplayComment `json:"comments"`
}
