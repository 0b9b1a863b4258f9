// Package session is the command layer: it executes user intents against
// the data store and keeps a local display-model collection in step with
// persisted truth. A local mutation happens strictly after the remote
// call reports success; on any error the local state is left unchanged.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/internal/viewer"
	"teamfeed/model"
	"teamfeed/services"
)

var (
	ErrNotSignedIn   = errors.New("not signed in")
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrBadVisibility = errors.New("visibility must be public or private")
	ErrUnknownPost   = errors.New("unknown post")
	ErrPostBusy      = errors.New("a command for this post is still in flight")
)

// Store is the data-store boundary the commands run against.
type Store interface {
	ListPosts(ctx context.Context) ([]model.PostWithMeta, error)
	InsertPost(ctx context.Context, authorID bson.ObjectID, content, visibility string) (model.Post, error)
	InsertLike(ctx context.Context, postID, userID bson.ObjectID) (dup bool, err error)
	DeleteLike(ctx context.Context, postID, userID bson.ObjectID) error
	InsertComment(ctx context.Context, postID, authorID bson.ObjectID, content string) (model.Comment, error)
	UsernamesByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]string, error)
}

// Identity is the slice of the identity provider a session needs.
type Identity interface {
	SignOut(ctx context.Context, sessionID bson.ObjectID) error
}

// Session holds one signed-in viewer and their local view of the feed.
// Commands are expected to be issued one at a time from a single event
// loop; the per-post in-flight guard rejects a second command against a
// post whose previous command has not completed, so racing toggle or
// comment calls cannot lose updates.
type Session struct {
	store    Store
	identity Identity
	viewer   viewer.Viewer
	id       bson.ObjectID

	mu       sync.Mutex
	posts    []model.DisplayPost
	inFlight map[bson.ObjectID]struct{}
}

func New(store Store, idp Identity, v viewer.Viewer, sessionID bson.ObjectID) *Session {
	return &Session{
		store:    store,
		identity: idp,
		viewer:   v,
		id:       sessionID,
		inFlight: make(map[bson.ObjectID]struct{}),
	}
}

func (s *Session) Viewer() viewer.Viewer {
	return s.viewer
}

// Posts returns a copy of the local display collection, newest first.
func (s *Session) Posts() []model.DisplayPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DisplayPost, len(s.posts))
	copy(out, s.posts)
	return out
}

// Refresh reloads the visible feed from the store. This is the only way
// other users' activity becomes observable.
func (s *Session) Refresh(ctx context.Context) error {
	if s.viewer.Zero() {
		return ErrNotSignedIn
	}

	rows, err := s.store.ListPosts(ctx)
	if err != nil {
		return err
	}
	visible := services.SelectVisible(rows, s.viewer)

	names, err := s.store.UsernamesByIDs(ctx, services.CommentAuthors(visible))
	if err != nil {
		return err
	}
	feed := services.BuildDisplayFeed(visible, s.viewer, names)

	s.mu.Lock()
	s.posts = feed
	s.mu.Unlock()
	return nil
}

// CreatePost persists the post and, only on success, prepends it to the
// local collection with zero likes and no comments.
func (s *Session) CreatePost(ctx context.Context, content, visibility string) (model.DisplayPost, error) {
	if s.viewer.Zero() {
		return model.DisplayPost{}, ErrNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.DisplayPost{}, ErrEmptyContent
	}
	if visibility != model.VisibilityPublic && visibility != model.VisibilityPrivate {
		return model.DisplayPost{}, ErrBadVisibility
	}

	post, err := s.store.InsertPost(ctx, s.viewer.ID, content, visibility)
	if err != nil {
		return model.DisplayPost{}, err
	}

	d := model.DisplayPost{
		ID:             post.ID,
		AuthorID:       s.viewer.ID,
		AuthorUsername: s.viewer.Username,
		AuthorTeam:     s.viewer.Team,
		Content:        post.Content,
		Visibility:     post.Visibility,
		CreatedAt:      post.CreatedAt,
		Comments:       []model.DisplayComment{},
	}

	s.mu.Lock()
	s.posts = append([]model.DisplayPost{d}, s.posts...)
	s.mu.Unlock()
	return d, nil
}

// ToggleLike flips the viewer's like on the post: delete when currently
// liked, insert otherwise. A duplicate report from the store (the row
// already existed) still sets the liked flag but never double-counts.
func (s *Session) ToggleLike(ctx context.Context, postID bson.ObjectID) error {
	if s.viewer.Zero() {
		return ErrNotSignedIn
	}
	liked, err := s.beginFor(postID)
	if err != nil {
		return err
	}
	defer s.endFor(postID)

	if liked {
		if err := s.store.DeleteLike(ctx, postID, s.viewer.ID); err != nil {
			return err
		}
		s.updatePost(postID, func(p *model.DisplayPost) {
			p.ViewerHasLiked = false
			p.LikeCount--
		})
		return nil
	}

	dup, err := s.store.InsertLike(ctx, postID, s.viewer.ID)
	if err != nil {
		return err
	}
	s.updatePost(postID, func(p *model.DisplayPost) {
		if !p.ViewerHasLiked && !dup {
			p.LikeCount++
		}
		p.ViewerHasLiked = true
	})
	return nil
}

// AddComment persists the comment and, only on success, appends it to
// the post's comment sequence. The acting viewer is always the author,
// so the display name is "You".
func (s *Session) AddComment(ctx context.Context, postID bson.ObjectID, content string) error {
	if s.viewer.Zero() {
		return ErrNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	if _, err := s.beginFor(postID); err != nil {
		return err
	}
	defer s.endFor(postID)

	com, err := s.store.InsertComment(ctx, postID, s.viewer.ID, content)
	if err != nil {
		return err
	}
	s.updatePost(postID, func(p *model.DisplayPost) {
		p.Comments = append(p.Comments, model.DisplayComment{
			ID:          com.ID,
			DisplayName: "You",
			Content:     com.Content,
		})
		p.CommentCount = len(p.Comments)
	})
	return nil
}

// SignOut invalidates the session with the identity provider and clears
// all local state. Commands after SignOut fail with ErrNotSignedIn.
func (s *Session) SignOut(ctx context.Context) error {
	if s.viewer.Zero() {
		return ErrNotSignedIn
	}
	if err := s.identity.SignOut(ctx, s.id); err != nil {
		return err
	}
	s.mu.Lock()
	s.viewer = viewer.Viewer{}
	s.posts = nil
	s.inFlight = make(map[bson.ObjectID]struct{})
	s.mu.Unlock()
	return nil
}

// beginFor claims the in-flight slot for the post and reports whether the
// viewer currently has it liked; fails when the post is unknown or a
// prior command against it is still running.
func (s *Session) beginFor(postID bson.ObjectID) (liked bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.posts {
		if s.posts[i].ID == postID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, ErrUnknownPost
	}
	if _, busy := s.inFlight[postID]; busy {
		return false, ErrPostBusy
	}
	s.inFlight[postID] = struct{}{}
	return s.posts[idx].ViewerHasLiked, nil
}

func (s *Session) endFor(postID bson.ObjectID) {
	s.mu.Lock()
	delete(s.inFlight, postID)
	s.mu.Unlock()
}

func (s *Session) updatePost(postID bson.ObjectID, apply func(*model.DisplayPost)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			apply(&s.posts[i])
			return
		}
	}
}
