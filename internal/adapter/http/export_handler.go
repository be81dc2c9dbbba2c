package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"resume-builder/internal/adapter/http/presenter"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler renders résumés to HTML previews and PDF downloads.
type ExportHandler struct {
	resumes  *usecase.ResumeService
	exporter *usecase.Exporter
}

func NewExportHandler(resumes *usecase.ResumeService, exporter *usecase.Exporter) *ExportHandler {
	return &ExportHandler{resumes: resumes, exporter: exporter}
}

type exportRequest struct {
	Document     json.RawMessage `json:"document"`
	TemplateID   string          `json:"templateId"`
	ColorPalette []string        `json:"colorPalette"`
	Filename     string          `json:"filename"`
}

// Export prints a document sent in the request body, saved or not.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var req exportRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	doc, err := usecase.DecodeDocument(req.Document)
	if err != nil {
		return presenter.FromError(c, err)
	}
	out, err := h.exporter.Export(c.UserContext(), usecase.ExportRequest{
		Document:     doc,
		Template:     req.TemplateID,
		ColorPalette: req.ColorPalette,
		Filename:     req.Filename,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return sendPDF(c, out)
}

// PDF prints a stored résumé with its own template and palette.
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	r, err := h.resumes.Get(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	out, err := h.exporter.Export(c.UserContext(), usecase.ExportRequest{
		Document: r.ResumeContent,
		Template: c.Query("template"),
		Filename: c.Query("filename"),
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return sendPDF(c, out)
}

// Preview returns the page as HTML. ?template= tries another layout without
// saving it.
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	r, err := h.resumes.Get(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	page := h.exporter.Page(usecase.ExportRequest{Document: r.ResumeContent, Template: c.Query("template")})
	html, err := page.HTML()
	if err != nil {
		return presenter.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set("X-Template-Fallback", fmt.Sprint(page.Fallback))
	return c.Status(fiber.StatusOK).SendString(html)
}

func sendPDF(c *fiber.Ctx, out usecase.Export) error {
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(out.Filename))
	return c.Status(fiber.StatusOK).Send(out.Data)
}

// contentDisposition names the download twice: an ASCII filename for old
// clients and the exact name as RFC 5987 filename*.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r >= unicode.MaxASCII || r < 0x20|| r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, encodeExtValue(name))
}

// encodeExtValue percent-encodes every byte outside RFC 5987 attr-char.
func encodeExtValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
			strings.IndexByte("!#$&+-.^_`|~", c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
