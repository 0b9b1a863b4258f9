package services_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/model"
	"teamfeed/services"
)

func newComment(postID, authorID bson.ObjectID) model.Comment {
	return model.Comment{
		ID:        bson.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   gofakeit.Sentence(4),
		CreatedAt: time.Now().UTC(),
	}
}

func TestToDisplayModelLikeCountAndViewerHasLiked(t *testing.T) {
	v := newViewer("engineering")
	p := newPost(model.VisibilityPublic, "engineering")
	p.Likes = []model.Like{
		{PostID: p.ID, UserID: bson.NewObjectID()},
		{PostID: p.ID, UserID: v.ID},
		{PostID: p.ID, UserID: bson.NewObjectID()},
	}

	d := services.ToDisplayModel(p, v, nil)
	require.Equal(t, 3, d.LikeCount)
	require.True(t, d.ViewerHasLiked)

	p.Likes = p.Likes[:1]
	d = services.ToDisplayModel(p, v, nil)
	require.Equal(t, 1, d.LikeCount)
	require.False(t, d.ViewerHasLiked)
}

func TestToDisplayModelCommentOrderAndNames(t *testing.T) {
	v := newViewer("engineering")
	p := newPost(model.VisibilityPublic, "engineering")

	friend := bson.NewObjectID()
	stranger := bson.NewObjectID()
	p.Comments = []model.Comment{
		newComment(p.ID, friend),
		newComment(p.ID, v.ID),
		newComment(p.ID, stranger),
	}
	names := map[bson.ObjectID]string{friend: "marta"}

	d := services.ToDisplayModel(p, v, names)
	require.Len(t, d.Comments, 3)
	require.Equal(t, 3, d.CommentCount)

	// Creation order is preserved.
	for i := range p.Comments {
		require.Equal(t, p.Comments[i].ID, d.Comments[i].ID)
		require.Equal(t, p.Comments[i].Content, d.Comments[i].Content)
	}

	require.Equal(t, "marta", d.Comments[0].DisplayName)
	require.Equal(t, "You", d.Comments[1].DisplayName)
	require.Equal(t, services.UnknownName, d.Comments[2].DisplayName)
}

func TestToDisplayModelAuthorFallback(t *testing.T) {
	v := newViewer("engineering")
	p := newPost(model.VisibilityPublic, "engineering")
	p.Author = nil

	d := services.ToDisplayModel(p, v, nil)
	require.Equal(t, services.UnknownName, d.AuthorUsername)
	require.Equal(t, services.UnknownName, d.AuthorTeam)
}

func TestToDisplayModelPure(t *testing.T) {
	v := newViewer("engineering")
	p := newPost(model.VisibilityPrivate, "engineering")
	p.Likes = []model.Like{{PostID: p.ID, UserID: v.ID}}
	p.Comments = []model.Comment{newComment(p.ID, v.ID)}
	names := map[bson.ObjectID]string{}

	first := services.ToDisplayModel(p, v, names)
	second := services.ToDisplayModel(p, v, names)
	require.Equal(t, first, second)
}

func TestCommentAuthorsDistinct(t *testing.T) {
	a := bson.NewObjectID()
	b := bson.NewObjectID()

	p1 := newPost(model.VisibilityPublic, "design")
	p1.Comments = []model.Comment{newComment(p1.ID, a), newComment(p1.ID, b)}
	p2 := newPost(model.VisibilityPublic, "design")
	p2.Comments = []model.Comment{newComment(p2.ID, a)}

	ids := services.CommentAuthors([]model.PostWithMeta{p1, p2})
	require.ElementsMatch(t, []bson.ObjectID{a, b}, ids)
}
