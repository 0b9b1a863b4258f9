package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"teamfeed/model"
)

// ===== MongoDB stage/keyword constants =====
const (
	stageMatch  = "$match"
	stageLookup = "$lookup"
	stageUnwind = "$unwind"
	stageSort   = "$sort"

	keyFrom         = "from"
	keyLocalField   = "localField"
	keyForeignField = "foreignField"
	keyAs           = "as"
	keyPipeline     = "pipeline"
	keyLet          = "let"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

func (r *PostRepository) Insert(ctx context.Context, authorID bson.ObjectID, content, visibility string) (model.Post, error) {
	post := model.Post{
		AuthorID:   authorID,
		Content:    strings.TrimSpace(content),
		Visibility: visibility,
		CreatedAt:  time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return model.Post{}, err
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return post, nil
}

// ListWithMeta returns every post joined with its author profile, like
// set and comments (creation order), newest post first. The full result
// set is returned each call; visibility filtering happens in the service
// layer against the viewer, not in the query.
func (r *PostRepository) ListWithMeta(ctx context.Context) ([]model.PostWithMeta, error) {
	pipe := mongo.Pipeline{
		{{Key: stageLookup, Value: bson.M{
			keyFrom:         "profiles",
			keyLocalField:   "author_id",
			keyForeignField: "_id",
			keyAs:           "author",
		}}},
		{{Key: stageUnwind, Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},

		{{Key: stageLookup, Value: bson.M{
			keyFrom:         "likes",
			keyLocalField:   "_id",
			keyForeignField: "post_id",
			keyAs:           "likes",
		}}},

		{{Key: stageLookup, Value: bson.M{
			keyFrom: "comments",
			keyLet:  bson.M{"pid": "$_id"},
			keyPipeline: mongo.Pipeline{
				{{Key: stageMatch, Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$post_id", "$$pid"}}}}},
				{{Key: stageSort, Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
			},
			keyAs: "comments",
		}}},

		{{Key: stageSort, Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []model.PostWithMeta
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
