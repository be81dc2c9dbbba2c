package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-builder/internal/domain"
	"resume-builder/pkg/ai"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestFromError_StatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Fields: []domain.FieldError{{Field: "title", Message: "must not be empty"}}}, 400},
		{fmt.Errorf("%w: %q", domain.ErrInvalidID, "x"), 400},
		{domain.ErrInvalidPayload, 400},
		{domain.ErrNotFound, 404},
		{domain.ErrUserAlreadyExists, 409},
		{domain.ErrInvalidCredentials, 401},
		{&domain.ExportError{Failures: []domain.StrategyFailure{{Strategy: "file", Err: errors.New("x")}}}, 500},
		{fmt.Errorf("%w: status 503", ai.ErrUpstream), 502},
		{fiber.ErrRequestEntityTooLarge, 413},
		{errors.New("disk on fire"), 500},
	}
	for _, c := range cases {
		status, body := respond(t, c.err)
		assert.Equal(t, c.want, status, c.err.Error())
		assert.NotEmpty(t, body["message"])
	}
}

func TestFromError_ValidationBody(t *testing.T) {
	_, body := respond(t, &domain.ValidationError{Fields: []domain.FieldError{{Field: "title", Message: "must not be empty"}}})
	assert.Equal(t, "validation failed", body["message"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].(map[string]any)["field"])
}

func TestFromError_ServerFaultDoesNotLeakDetails(t *testing.T) {
	_, body := respond(t, errors.New("password=hunter2"))
	assert.Equal(t, "internal server error", body["message"])
}
