package services

import (
	"teamfeed/internal/viewer"
	"teamfeed/model"
)

// SelectVisible returns the subset of posts the viewer may see, in input
// order. Callers supply posts pre-sorted newest first; this never
// reorders. A zero viewer (unauthenticated) sees nothing.
func SelectVisible(posts []model.PostWithMeta, v viewer.Viewer) []model.PostWithMeta {
	if v.Zero() {
		return nil
	}
	out := make([]model.PostWithMeta, 0, len(posts))
	for _, p := range posts {
		if Visible(p, v) {
			out = append(out, p)
		}
	}
	return out
}

// Visible reports whether a single post is visible to the viewer: public
// posts always, private posts to the author and to the author's current
// team. A post whose author profile is missing has no team to match, so
// only the author clause can admit it.
func Visible(p model.PostWithMeta, v viewer.Viewer) bool {
	if p.Visibility == model.VisibilityPublic {
		return true
	}
	if p.AuthorID == v.ID {
		return true
	}
	return p.Author != nil && p.Author.Team == v.Team
}
