package http

import (
	"errors"
	"time"

	"resume-builder/internal/adapter/http/presenter"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth     *usecase.AuthService
	tokenTTL time.Duration
}

func NewAuthHandler(auth *usecase.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	result, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return presenter.FromError(c, err)
	}
	h.setCookie(c, result.Token)
	return presenter.JSON(c, fiber.StatusCreated, result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Error(c, fiber.StatusBadRequest, "email and password are required")
	}
	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenter.FromError(c, err)
	}
	h.setCookie(c, result.Token)
	return presenter.JSON(c, fiber.StatusOK, result)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.UserContext(), currentUser(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// token for an account that no longer exists
			return presenter.Error(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusOK, user)
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
