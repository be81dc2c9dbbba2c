package http

import (
	"resume-builder/internal/adapter/http/presenter"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// Handler serves résumé CRUD for the signed-in user.
type Handler struct {
	resumes *usecase.ResumeService
}

func NewHandler(resumes *usecase.ResumeService) *Handler {
	return &Handler{resumes: resumes}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	r, err := h.resumes.Create(c.UserContext(), currentUser(c), c.Body())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusCreated, r)
}

func (h *Handler) List(c *fiber.Ctx) error {
	list, err := h.resumes.List(c.UserContext(), currentUser(c))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusOK, list)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	r, err := h.resumes.Get(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusOK, r)
}

// Update serves both PUT and PATCH; either way only the supplied fields
// change.
func (h *Handler) Update(c *fiber.Ctx) error {
	r, err := h.resumes.Update(c.UserContext(), currentUser(c), c.Params("id"), c.Body())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusOK, r)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.resumes.Delete(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusOK, fiber.Map{"message": "resume deleted"})
}
