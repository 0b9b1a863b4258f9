package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/model"
)

// MongoStore bundles the repositories into the data-store boundary the
// session command layer talks to.
type MongoStore struct {
	Posts    *PostRepository
	Likes    *LikeRepository
	Comments *CommentRepository
	Profiles *ProfileRepository
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		Posts:    NewPostRepository(db),
		Likes:    NewLikeRepository(db),
		Comments: NewCommentRepository(db),
		Profiles: NewProfileRepository(db),
	}
}

func (s *MongoStore) ListPosts(ctx context.Context) ([]model.PostWithMeta, error) {
	return s.Posts.ListWithMeta(ctx)
}

func (s *MongoStore) InsertPost(ctx context.Context, authorID bson.ObjectID, content, visibility string) (model.Post, error) {
	return s.Posts.Insert(ctx, authorID, content, visibility)
}

func (s *MongoStore) InsertLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error) {
	return s.Likes.Insert(ctx, postID, userID)
}

func (s *MongoStore) DeleteLike(ctx context.Context, postID, userID bson.ObjectID) error {
	return s.Likes.Delete(ctx, postID, userID)
}

func (s *MongoStore) InsertComment(ctx context.Context, postID, authorID bson.ObjectID, content string) (model.Comment, error) {
	return s.Comments.Insert(ctx, postID, authorID, content)
}

func (s *MongoStore) UsernamesByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]string, error) {
	return s.Profiles.UsernamesByIDs(ctx, ids)
}
