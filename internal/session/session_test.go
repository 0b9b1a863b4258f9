package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/internal/session"
	"teamfeed/internal/viewer"
	"teamfeed/model"
)

// stubStore satisfies session.Store with overridable behavior per call.
type stubStore struct {
	rows  []model.PostWithMeta
	names map[bson.ObjectID]string

	insertPost    func(authorID bson.ObjectID, content, visibility string) (model.Post, error)
	insertLike    func(postID, userID bson.ObjectID) (bool, error)
	deleteLike    func(postID, userID bson.ObjectID) error
	insertComment func(postID, authorID bson.ObjectID, content string) (model.Comment, error)
}

func (s *stubStore) ListPosts(context.Context) ([]model.PostWithMeta, error) {
	return s.rows, nil
}

func (s *stubStore) InsertPost(_ context.Context, authorID bson.ObjectID, content, visibility string) (model.Post, error) {
	if s.insertPost != nil {
		return s.insertPost(authorID, content, visibility)
	}
	return model.Post{
		ID:         bson.NewObjectID(),
		AuthorID:   authorID,
		Content:    content,
		Visibility: visibility,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *stubStore) InsertLike(_ context.Context, postID, userID bson.ObjectID) (bool, error) {
	if s.insertLike != nil {
		return s.insertLike(postID, userID)
	}
	return false, nil
}

func (s *stubStore) DeleteLike(_ context.Context, postID, userID bson.ObjectID) error {
	if s.deleteLike != nil {
		return s.deleteLike(postID, userID)
	}
	return nil
}

func (s *stubStore) InsertComment(_ context.Context, postID, authorID bson.ObjectID, content string) (model.Comment, error) {
	if s.insertComment != nil {
		return s.insertComment(postID, authorID, content)
	}
	return model.Comment{
		ID:        bson.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *stubStore) UsernamesByIDs(context.Context, []bson.ObjectID) (map[bson.ObjectID]string, error) {
	if s.names == nil {
		return map[bson.ObjectID]string{}, nil
	}
	return s.names, nil
}

type stubIdentity struct {
	signedOut []bson.ObjectID
	err       error
}

func (s *stubIdentity) SignOut(_ context.Context, sessionID bson.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	s.signedOut = append(s.signedOut, sessionID)
	return nil
}

func testViewer() viewer.Viewer {
	return viewer.Viewer{
		ID:       bson.NewObjectID(),
		Username: gofakeit.Username(),
		Team:     "engineering",
	}
}

func publicRow(authorTeam string) model.PostWithMeta {
	authorID := bson.NewObjectID()
	return model.PostWithMeta{
		Post: model.Post{
			ID:         bson.NewObjectID(),
			AuthorID:   authorID,
			Content:    gofakeit.Sentence(5),
			Visibility: model.VisibilityPublic,
			CreatedAt:  time.Now().UTC(),
		},
		Author: &model.Profile{ID: authorID, Username: gofakeit.Username(), Team: authorTeam},
	}
}

func newSession(t *testing.T, store *stubStore, idp *stubIdentity) (*session.Session, viewer.Viewer) {
	t.Helper()
	v := testViewer()
	sess := session.New(store, idp, v, bson.NewObjectID())
	require.NoError(t, sess.Refresh(context.Background()))
	return sess, v
}

func TestRefreshFiltersInvisiblePosts(t *testing.T) {
	visible := publicRow("design")
	hidden := publicRow("design")
	hidden.Visibility = model.VisibilityPrivate

	store := &stubStore{rows: []model.PostWithMeta{visible, hidden}}
	sess, _ := newSession(t, store, &stubIdentity{})

	posts := sess.Posts()
	require.Len(t, posts, 1)
	require.Equal(t, visible.ID, posts[0].ID)
}

func TestCreatePostPrepends(t *testing.T) {
	store := &stubStore{rows: []model.PostWithMeta{publicRow("design")}}
	sess, v := newSession(t, store, &stubIdentity{})

	d, err := sess.CreatePost(context.Background(), "  hello team  ", model.VisibilityPrivate)
	require.NoError(t, err)
	require.Equal(t, "hello team", d.Content)
	require.Equal(t, v.Username, d.AuthorUsername)
	require.Zero(t, d.LikeCount)
	require.False(t, d.ViewerHasLiked)
	require.Empty(t, d.Comments)

	posts := sess.Posts()
	require.Len(t, posts, 2)
	require.Equal(t, d.ID, posts[0].ID)
}

func TestCreatePostStoreFailureLeavesStateUnchanged(t *testing.T) {
	store := &stubStore{rows: []model.PostWithMeta{publicRow("design")}}
	store.insertPost = func(bson.ObjectID, string, string) (model.Post, error) {
		return model.Post{}, errors.New("constraint violation")
	}
	sess, _ := newSession(t, store, &stubIdentity{})
	before := sess.Posts()

	_, err := sess.CreatePost(context.Background(), "hello", model.VisibilityPublic)
	require.Error(t, err)
	require.Equal(t, before, sess.Posts())
}

func TestCreatePostRejectsWhitespaceContent(t *testing.T) {
	called := false
	store := &stubStore{}
	store.insertPost = func(bson.ObjectID, string, string) (model.Post, error) {
		called = true
		return model.Post{}, nil
	}
	sess, _ := newSession(t, store, &stubIdentity{})

	_, err := sess.CreatePost(context.Background(), "   ", model.VisibilityPublic)
	require.ErrorIs(t, err, session.ErrEmptyContent)
	require.False(t, called)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	row := publicRow("design")
	store := &stubStore{rows: []model.PostWithMeta{row}}
	var deleted bool
	store.deleteLike = func(bson.ObjectID, bson.ObjectID) error {
		deleted = true
		return nil
	}
	sess, _ := newSession(t, store, &stubIdentity{})
	ctx := context.Background()

	require.NoError(t, sess.ToggleLike(ctx, row.ID))
	p := sess.Posts()[0]
	require.True(t, p.ViewerHasLiked)
	require.Equal(t, 1, p.LikeCount)

	require.NoError(t, sess.ToggleLike(ctx, row.ID))
	p = sess.Posts()[0]
	require.True(t, deleted)
	require.False(t, p.ViewerHasLiked)
	require.Equal(t, 0, p.LikeCount)
}

func TestToggleLikeDuplicateUpsertDoesNotDoubleCount(t *testing.T) {
	row := publicRow("design")
	store := &stubStore{rows: []model.PostWithMeta{row}}
	// The store already holds the (post, user) pair: the unique index
	// reports a duplicate instead of inserting a second row.
	store.insertLike = func(bson.ObjectID, bson.ObjectID) (bool, error) {
		return true, nil
	}
	sess, _ := newSession(t, store, &stubIdentity{})

	require.NoError(t, sess.ToggleLike(context.Background(), row.ID))
	p := sess.Posts()[0]
	require.True(t, p.ViewerHasLiked)
	require.Equal(t, 0, p.LikeCount)
}

func TestToggleLikeStoreFailureLeavesStateUnchanged(t *testing.T) {
	row := publicRow("design")
	store := &stubStore{rows: []model.PostWithMeta{row}}
	store.insertLike = func(bson.ObjectID, bson.ObjectID) (bool, error) {
		return false, errors.New("network timeout")
	}
	sess, _ := newSession(t, store, &stubIdentity{})
	before := sess.Posts()

	require.Error(t, sess.ToggleLike(context.Background(), row.ID))
	require.Equal(t, before, sess.Posts())
}

func TestToggleLikeUnknownPost(t *testing.T) {
	sess, _ := newSession(t, &stubStore{}, &stubIdentity{})

	err := sess.ToggleLike(context.Background(), bson.NewObjectID())
	require.ErrorIs(t, err, session.ErrUnknownPost)
}

func TestToggleLikeInFlightGuard(t *testing.T) {
	row := publicRow("design")
	store := &stubStore{rows: []model.PostWithMeta{row}}

	entered := make(chan struct{})
	release := make(chan struct{})
	store.insertLike = func(bson.ObjectID, bson.ObjectID) (bool, error) {
		close(entered)
		<-release
		return false, nil
	}
	sess, _ := newSession(t, store, &stubIdentity{})

	done := make(chan error, 1)
	go func() {
		done <- sess.ToggleLike(context.Background(), row.ID)
	}()
	<-entered

	// The first toggle has not completed: a second command against the
	// same post is rejected instead of racing it.
	err := sess.ToggleLike(context.Background(), row.ID)
	require.ErrorIs(t, err, session.ErrPostBusy)

	close(release)
	require.NoError(t, <-done)
	require.True(t, sess.Posts()[0].ViewerHasLiked)
}

func TestAddCommentAppendsAsYou(t *testing.T) {
	row := publicRow("design")
	store := &stubStore{rows: []model.PostWithMeta{row}}
	sess, _ := newSession(t, store, &stubIdentity{})
	ctx := context.Background()

	require.NoError(t, sess.AddComment(ctx, row.ID, "first"))
	require.NoError(t, sess.AddComment(ctx, row.ID, "second"))

	p := sess.Posts()[0]
	require.Equal(t, 2, p.CommentCount)
	require.Equal(t, "first", p.Comments[0].Content)
	require.Equal(t, "second", p.Comments[1].Content)
	require.Equal(t, "You", p.Comments[0].DisplayName)
	require.Equal(t, "You", p.Comments[1].DisplayName)
}

func TestAddCommentRejectsWhitespaceContent(t *testing.T) {
	row := publicRow("design")
	called := false
	store := &stubStore{rows: []model.PostWithMeta{row}}
	store.insertComment = func(bson.ObjectID, bson.ObjectID, string) (model.Comment, error) {
		called = true
		return model.Comment{}, nil
	}
	sess, _ := newSession(t, store, &stubIdentity{})
	before := sess.Posts()

	err := sess.AddComment(context.Background(), row.ID, "  ")
	require.ErrorIs(t, err, session.ErrEmptyContent)
	require.False(t, called)
	require.Equal(t, before, sess.Posts())
}

func TestSignOutClearsStateAndRevokes(t *testing.T) {
	store := &stubStore{rows: []model.PostWithMeta{publicRow("design")}}
	idp := &stubIdentity{}
	v := testViewer()
	sid := bson.NewObjectID()
	sess := session.New(store, idp, v, sid)
	require.NoError(t, sess.Refresh(context.Background()))

	require.NoError(t, sess.SignOut(context.Background()))
	require.Equal(t, []bson.ObjectID{sid}, idp.signedOut)
	require.Empty(t, sess.Posts())
	require.True(t, sess.Viewer().Zero())

	_, err := sess.CreatePost(context.Background(), "hello", model.VisibilityPublic)
	require.ErrorIs(t, err, session.ErrNotSignedIn)
	require.ErrorIs(t, sess.Refresh(context.Background()), session.ErrNotSignedIn)
}

func TestSignOutProviderFailureKeepsSession(t *testing.T) {
	store := &stubStore{rows: []model.PostWithMeta{publicRow("design")}}
	idp := &stubIdentity{err: errors.New("network timeout")}
	sess, _ := newSession(t, store, idp)

	require.Error(t, sess.SignOut(context.Background()))
	require.False(t, sess.Viewer().Zero())
	require.Len(t, sess.Posts(), 1)
}
