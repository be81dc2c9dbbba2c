package http

import (
	"context"
	"encoding/json"

	"resume-builder/internal/adapter/http/presenter"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type Analyzer interface {
	Analyze(ctx context.Context, doc domain.ResumeContent, jobDescription string) (json.RawMessage, error)
}

type AIHandler struct {
	resumes  *usecase.ResumeService
	analyzer Analyzer
}

func NewAIHandler(resumes *usecase.ResumeService, analyzer Analyzer) *AIHandler {
	return &AIHandler{resumes: resumes, analyzer: analyzer}
}

// analyzeRequest names a stored résumé or carries the document inline.
type analyzeRequest struct {
	ResumeID       string          `json:"resumeId"`
	Document       json.RawMessage `json:"document"`
	JobDescription string          `json:"jobDescription"`
}

func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	var doc domain.ResumeContent
	switch {
	case req.ResumeID != "":
		r, err := h.resumes.Get(c.UserContext(), currentUser(c), req.ResumeID)
		if err != nil {
			return presenter.FromError(c, err)
		}
		doc = r.ResumeContent
	case len(req.Document) > 0:
		d, err := usecase.DecodeDocument(req.Document)
		if err != nil {
			return presenter.FromError(c, err)
		}
		doc = d
	default:
		return presenter.Error(c, fiber.StatusBadRequest, "resumeId or document is required")
	}

	out, err := h.analyzer.Analyze(c.UserContext(), doc, req.JobDescription)
	if err != nil {
		return presenter.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(out)
}
