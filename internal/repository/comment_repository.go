package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"teamfeed/model"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection("comments")}
}

func (r *CommentRepository) Insert(ctx context.Context, postID, authorID bson.ObjectID, content string) (model.Comment, error) {
	com := model.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, com)
	if err != nil {
		return model.Comment{}, err
	}
	com.ID = res.InsertedID.(bson.ObjectID)
	return com, nil
}
