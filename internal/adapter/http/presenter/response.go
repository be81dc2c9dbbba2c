package presenter

import (
	"context"
	"errors"
	"net/http"

	"resume-builder/internal/domain"
	"resume-builder/pkg/ai"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type failure struct {
	Strategy string `json:"strategy"`
	Error    string `json:"error"`
}

type ExportErrorResponse struct {
	Message  string    `json:"message"`
	Failures []failure `json:"failures"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError maps a service error onto its HTTP response. Anything it does
// not recognise is a server fault.
func FromError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	var exportErr *domain.ExportError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &verr):
		return JSON(c, http.StatusBadRequest, ErrorResponse{Message: "validation failed", Errors: verr.Fields})
	case errors.Is(err, domain.ErrInvalidID):
		return Error(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, domain.ErrInvalidPayload):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return Error(c, http.StatusConflict, "user already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		return Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.As(err, &exportErr):
		resp := ExportErrorResponse{Message: "could not generate PDF", Failures: []failure{}}
		for _, f := range exportErr.Failures {
			resp.Failures = append(resp.Failures, failure{Strategy: f.Strategy, Error: f.Err.Error()})
		}
		return JSON(c, http.StatusInternalServerError, resp)
	case errors.Is(err, ai.ErrUpstream):
		return Error(c, http.StatusBadGateway, "analysis service unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return Error(c, http.StatusGatewayTimeout, "request timed out")
	case errors.As(err, &fiberErr):
		return Error(c, fiberErr.Code, fiberErr.Message)
	}
	return Error(c, http.StatusInternalServerError, "internal server error")
}
