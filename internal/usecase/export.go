package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logging"
	"resume-builder/internal/render"

	"go.uber.org/zap"
)

const ContentTypePDF = "application/pdf"

var pdfMagic = []byte("%PDF")

type ExportRequest struct {
	Document domain.ResumeContent
	// Template and ColorPalette override the document's own choice when set.
	Template     string
	ColorPalette []string
	Filename     string
}

type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter prints a rendered résumé to PDF. Strategies are tried in order
// and the first one producing a real PDF wins; each gets a few attempts
// with exponential backoff before the next one is tried.
type Exporter struct {
	strategies []PDFStrategy
	timeout    time.Duration
	attempts   int
	backoff    time.Duration
	log        *zap.Logger
}

func NewExporter(strategies []PDFStrategy, timeout time.Duration, log *zap.Logger) *Exporter {
	return &Exporter{
		strategies: strategies,
		timeout:    timeout,
		attempts:   2,
		backoff:    500 * time.Millisecond,
		log:        logging.OrNop(log),
	}
}

// Page lays out the request without printing it.
func (e *Exporter) Page(req ExportRequest) render.Page {
	tpl, colors := req.Document.Template, req.Document.ColorPalette
	if strings.TrimSpace(req.Template) != "" {
		tpl = req.Template
	}
	if len(req.ColorPalette) > 0 {
		colors = req.ColorPalette
	}
	return render.Render(req.Document, tpl, colors)
}

func (e *Exporter) Export(ctx context.Context, req ExportRequest) (Export, error) {
	page := e.Page(req)
	if page.Fallback {
		e.log.Warn("unknown template, using generic layout", zap.String("template", page.Requested))
	}
	html, err := page.HTML()
	if err != nil {
		return Export{}, fmt.Errorf("render html: %w", err)
	}

	exportErr := &domain.ExportError{}
	for _, s := range e.strategies {
		data, err := e.tryWithTimeout(ctx, s, html)
		if err == nil {
			e.log.Info("resume exported",
				zap.String("strategy", s.Name()),
				zap.String("template", string(page.Template)),
				zap.Int("bytes", len(data)))
			return Export{Filename: Filename(req.Filename, req.Document.Title), ContentType: ContentTypePDF, Data: data}, nil
		}
		e.log.Warn("export strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
		exportErr.Failures = append(exportErr.Failures, domain.StrategyFailure{Strategy: s.Name(), Err: err})
		// only the caller's context ends the export early
		if ctx.Err() != nil {
			break
		}
	}
	return Export{}, exportErr
}

// tryWithTimeout gives one strategy its own time budget.
func (e *Exporter) tryWithTimeout(ctx context.Context, s PDFStrategy, html string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.try(ctx, s, html)
}

func (e *Exporter) try(ctx context.Context, s PDFStrategy, html string) ([]byte, error) {
	attempts := e.attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		data, err := s.Print(ctx, html)
		if err == nil {
			if bytes.HasPrefix(data, pdfMagic) {
				return data, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(data))
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-time.After(e.backoff * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, errors.Join(lastErr, ctx.Err())
			}
		}
	}
	return nil, lastErr
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Filename picks the download name: the explicit name when given, otherwise
// a slug of the title. The result always ends in ".pdf".
func Filename(explicit, title string) string {
	name := strings.TrimSpace(explicit)
	if name != "" {
		name = path.Base(strings.ReplaceAll(name, `\`, "/"))
		name = strings.Map(func(r rune) rune {
			if r == '"' || r < 0x20 || r == 0x7f {
				return -1
			}
			return r
		}, name)
		name = strings.TrimSuffix(name, ".pdf")
		name = strings.TrimSuffix(name, ".PDF")
	}
	if name == "" || name == "." || name == "/" {
		name = strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	}
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}
