package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/dto"
	"teamfeed/internal/repository"
	"teamfeed/internal/viewer"
)

type LikeHandler struct {
	Likes *repository.LikeRepository
}

func NewLikeHandler(likes *repository.LikeRepository) *LikeHandler {
	return &LikeHandler{Likes: likes}
}

// Like godoc
// @Summary Like a post
// @Description Upserts the (post, viewer) like; liking twice is a no-op
// @Tags likes
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} dto.LikeResponse "already liked"
// @Success 201 {object} dto.LikeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts/{postId}/like [put]
func (h *LikeHandler) Like(c *fiber.Ctx) error {
	v, ok := viewer.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	dup, err := h.Likes.Insert(c.Context(), postID, v.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	resp := dto.LikeResponse{PostID: postID.Hex(), IsLiked: true, Message: "liked"}
	if dup {
		resp.Message = "already-liked"
		return c.JSON(resp)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Unlike godoc
// @Summary Remove a like
// @Tags likes
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts/{postId}/like [delete]
func (h *LikeHandler) Unlike(c *fiber.Ctx) error {
	v, ok := viewer.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	if err := h.Likes.Delete(c.Context(), postID, v.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.LikeResponse{PostID: postID.Hex(), IsLiked: false, Message: "unliked"})
}
