package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamfeed/configs"
	"teamfeed/dto"
	"teamfeed/internal/repository"
	"teamfeed/internal/viewer"
	"teamfeed/model"
)

type PostHandler struct {
	Posts *repository.PostRepository
}

func NewPostHandler(posts *repository.PostRepository) *PostHandler {
	return &PostHandler{Posts: posts}
}

// Create godoc
// @Summary Create a post
// @Description Persists the post; nothing is shown to anyone until the store confirms
// @Tags posts
// @Accept json
// @Produce json
// @Param createPostRequest body dto.CreatePostRequest true "Create Post Request"
// @Success 201 {object} model.DisplayPost
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	v, ok := viewer.FromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var body dto.CreatePostRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	content := strings.TrimSpace(body.Content)
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content required"})
	}
	if len(content) > configs.MaxPostChars {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content too long"})
	}

	visibility := body.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if visibility != model.VisibilityPublic && visibility != model.VisibilityPrivate {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "visibility must be public or private"})
	}

	post, err := h.Posts.Insert(c.Context(), v.ID, content, visibility)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(model.DisplayPost{
		ID:             post.ID,
		AuthorID:       v.ID,
		AuthorUsername: v.Username,
		AuthorTeam:     v.Team,
		Content:        post.Content,
		Visibility:     post.Visibility,
		CreatedAt:      post.CreatedAt,
		Comments:       []model.DisplayComment{},
	})
}
