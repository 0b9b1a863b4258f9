package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/configs"
	"teamfeed/dto"
	"teamfeed/internal/repository"
	"teamfeed/internal/viewer"
	"teamfeed/model"
)

type CommentHandler struct {
	Comments *repository.CommentRepository
}

func NewCommentHandler(comments *repository.CommentRepository) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

// Create godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param createCommentRequest body dto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} model.DisplayComment
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	v, ok := viewer.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	var body dto.CreateCommentRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content required"})
	}
	if len(content) > configs.MaxCommentChars {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content too long"})
	}

	com, err := h.Comments.Insert(c.Context(), postID, v.ID, content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	// The acting viewer is always the comment's own author.
	return c.Status(fiber.StatusCreated).JSON(model.DisplayComment{
		ID:          com.ID,
		DisplayName: "You",
		Content:     com.Content,
	})
}
