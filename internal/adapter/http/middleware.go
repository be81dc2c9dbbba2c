package http

import (
	"strings"
	"time"

	"resume-builder/internal/adapter/http/presenter"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	localUserID = "userId"
	tokenCookie = "token"
)

type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// NewAuthMiddleware accepts "Authorization: Bearer <token>", a bare token in
// that header, or the token cookie. On success the user id is stored in
// c.Locals("userId").
func NewAuthMiddleware(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearer(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(c.Cookies(tokenCookie))
		}
		if tokenStr == "" {
			return presenter.Error(c, fiber.StatusUnauthorized, "missing token")
		}
		id, err := tokens.Parse(tokenStr)
		if err != nil {
			return presenter.Error(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(localUserID, id)
		return c.Next()
	}
}

func bearer(header string) string {
	header = strings.TrimSpace(header)
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func currentUser(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}

// requestLogger logs one line per request once the handler chain is done.
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler pick the status before logging it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		}
		switch {
		case status >= 500:
			log.Error("request", append(fields, zap.Error(err))...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}
