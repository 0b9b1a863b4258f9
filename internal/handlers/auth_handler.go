package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamfeed/dto"
	"teamfeed/internal/authctx"
	"teamfeed/internal/identity"
)

type AuthHandler struct {
	Provider *identity.Provider
}

func NewAuthHandler(p *identity.Provider) *AuthHandler {
	return &AuthHandler{Provider: p}
}

// SignUp godoc
// @Summary Create an account
// @Description Creates the account and profile, then signs the new user in
// @Tags auth
// @Accept json
// @Produce json
// @Param signUpRequest body dto.SignUpRequest true "Sign Up Request"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var body dto.SignUpRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	token, err := h.Provider.SignUp(c.Context(), body.Username, body.Password, body.Team)
	switch {
	case errors.Is(err, identity.ErrUnknownTeam), errors.Is(err, identity.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, identity.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TokenResponse{AccessToken: token})
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param signInRequest body dto.SignInRequest true "Sign In Request"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var body dto.SignInRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	token, err := h.Provider.SignIn(c.Context(), body.Username, body.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.TokenResponse{AccessToken: token})
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the current session; the token stops verifying
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	sid, ok := authctx.SessionIDFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if err := h.Provider.SignOut(c.Context(), sid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
