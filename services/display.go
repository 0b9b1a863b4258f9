package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/internal/viewer"
	"teamfeed/model"
)

// UnknownName is the fallback when a comment author's profile cannot be
// resolved through the name map.
const UnknownName = "Unknown"

// ToDisplayModel shapes one feed row for the viewer. Pure: the output is
// derived only from the row, the viewer and the name map. Comments keep
// their stored (creation) order.
func ToDisplayModel(p model.PostWithMeta, v viewer.Viewer, names map[bson.ObjectID]string) model.DisplayPost {
	d := model.DisplayPost{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Content:    p.Content,
		Visibility: p.Visibility,
		CreatedAt:  p.CreatedAt,
		LikeCount:  len(p.Likes),
	}

	if p.Author != nil {
		d.AuthorUsername = p.Author.Username
		d.AuthorTeam = p.Author.Team
	} else {
		d.AuthorUsername = UnknownName
		d.AuthorTeam = UnknownName
	}

	for _, l := range p.Likes {
		if l.UserID == v.ID {
			d.ViewerHasLiked = true
			break
		}
	}

	d.Comments = make([]model.DisplayComment, 0, len(p.Comments))
	for _, c := range p.Comments {
		d.Comments = append(d.Comments, model.DisplayComment{
			ID:          c.ID,
			DisplayName: resolveName(c.AuthorID, v, names),
			Content:     c.Content,
		})
	}
	d.CommentCount = len(d.Comments)

	return d
}

// BuildDisplayFeed maps every row through ToDisplayModel.
func BuildDisplayFeed(posts []model.PostWithMeta, v viewer.Viewer, names map[bson.ObjectID]string) []model.DisplayPost {
	out := make([]model.DisplayPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDisplayModel(p, v, names))
	}
	return out
}

// CommentAuthors collects the distinct comment author ids across posts,
// so the caller can resolve display names in one profile fetch.
func CommentAuthors(posts []model.PostWithMeta) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{})
	var ids []bson.ObjectID
	for _, p := range posts {
		for _, c := range p.Comments {
			if _, ok := seen[c.AuthorID]; ok {
				continue
			}
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
	}
	return ids
}

func resolveName(authorID bson.ObjectID, v viewer.Viewer, names map[bson.ObjectID]string) string {
	if authorID == v.ID {
		return "You"
	}
	if name, ok := names[authorID]; ok && name != "" {
		return name
	}
	return UnknownName
}
