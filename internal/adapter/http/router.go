package http

import (
	"resume-builder/internal/adapter/http/presenter"
	"resume-builder/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type Handlers struct {
	Resumes *Handler
	Auth    *AuthHandler
	Export  *ExportHandler
	Upload  *UploadHandler
	AI      *AIHandler
	Health  *HealthHandler
	Tokens  TokenParser
}

// NewApp builds the fiber app with every route mounted under /api/v1.
func NewApp(h Handlers, bodyLimit int, log *zap.Logger) *fiber.App {
	log = logging.OrNop(log)
	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          presenter.FromError,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger(log))

	Register(app, h)
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	v1 := app.Group("/api/v1")

	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)
	v1.Get("/templates", Templates)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	authMW := NewAuthMiddleware(h.Tokens)
	a.Get("/me", authMW, h.Auth.Me)

	r := v1.Group("/resumes", authMW)
	r.Post("/", h.Resumes.Create)
	r.Get("/", h.Resumes.List)
	r.Get("/:id", h.Resumes.Get)
	r.Put("/:id", h.Resumes.Update)
	r.Patch("/:id", h.Resumes.Update)
	r.Delete("/:id", h.Resumes.Delete)
	r.Get("/:id/preview", h.Export.Preview)
	r.Get("/:id/pdf", h.Export.PDF)

	v1.Post("/export", authMW, h.Export.Export)
	v1.Post("/uploads/image", authMW, h.Upload.Image)
	v1.Post("/ai/analyze", authMW, h.AI.Analyze)
}
