package handlers

import (
	"github.com/gofiber/fiber/v2"

	"teamfeed/dto"
	"teamfeed/internal/repository"
	"teamfeed/internal/viewer"
	"teamfeed/services"
)

type FeedHandler struct {
	Posts    *repository.PostRepository
	Profiles *repository.ProfileRepository
}

func NewFeedHandler(posts *repository.PostRepository, profiles *repository.ProfileRepository) *FeedHandler {
	return &FeedHandler{Posts: posts, Profiles: profiles}
}

// Feed godoc
// @Summary Get the visible feed
// @Description Posts visible to the viewer (public, same team, or own), newest first
// @Tags feed
// @Produce json
// @Success 200 {object} dto.FeedResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /feed [get]
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	v, ok := viewer.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	rows, err := h.Posts.ListWithMeta(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	visible := services.SelectVisible(rows, v)

	names, err := h.Profiles.UsernamesByIDs(c.Context(), services.CommentAuthors(visible))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.FeedResponse{Items: services.BuildDisplayFeed(visible, v, names)})
}
