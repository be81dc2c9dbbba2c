package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name  string
	out   []byte
	err   error
	calls int
	html  string
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Print(_ context.Context, html string) ([]byte, error) {
	f.calls++
	f.html = html
	return f.out, f.err
}

func newTestExporter(s ...PDFStrategy) *Exporter {
	e := NewExporter(s, 0, nil)
	e.backoff = 0
	return e
}

func sampleDoc() domain.ResumeContent {
	doc := domain.NewResumeContent("Senior Engineer CV")
	doc.ProfileInfo.FullName = "Ann Lee"
	return doc
}

func TestExporter_FirstStrategySucceeds(t *testing.T) {
	first := &fakeStrategy{name: "file", out: []byte("%PDF-1.7 body")}
	second := &fakeStrategy{name: "inline", out: []byte("%PDF-1.4")}

	out, err := newTestExporter(first, second).Export(context.Background(), ExportRequest{Document: sampleDoc()})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out.Data), "%PDF"))
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "senior-engineer-cv.pdf", out.Filename)
	assert.Equal(t, 0, second.calls)
	assert.Contains(t, first.html, "Ann Lee")
}

func TestExporter_FallsBackAfterFailure(t *testing.T) {
	first := &fakeStrategy{name: "file", err: errors.New("chrome crashed")}
	second := &fakeStrategy{name: "inline", out: []byte("%PDF-1.4")}

	out, err := newTestExporter(first, second).Export(context.Background(), ExportRequest{Document: sampleDoc(), Filename: "mine"})
	require.NoError(t, err)
	assert.Equal(t, "mine.pdf", out.Filename)
	assert.Equal(t, 2, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestExporter_RejectsNonPDFOutput(t *testing.T) {
	bogus := &fakeStrategy{name: "file", out: []byte("<html>")}
	_, err := newTestExporter(bogus).Export(context.Background(), ExportRequest{Document: sampleDoc()})

	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	require.Len(t, exportErr.Failures, 1)
	assert.Equal(t, "file", exportErr.Failures[0].Strategy)
}

func TestExporter_AllFail(t *testing.T) {
	boom := errors.New("no browser")
	first := &fakeStrategy{name: "file", err: boom}
	second := &fakeStrategy{name: "inline", err: errors.New("timeout")}

	_, err := newTestExporter(first, second).Export(context.Background(), ExportRequest{Document: sampleDoc()})
	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Len(t, exportErr.Failures, 2)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "inline: timeout")
}

// hangingStrategy blocks until its context is done, like a stuck browser.
type hangingStrategy struct{}

func (hangingStrategy) Name() string { return "file" }

func (hangingStrategy) Print(ctx context.Context, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestExporter_HangingStrategyLeavesTimeForFallback(t *testing.T) {
	fallback := &fakeStrategy{name: "inline", out: []byte("%PDF-1.4")}
	e := newTestExporter(hangingStrategy{}, fallback)
	e.timeout = 50 * time.Millisecond

	out, err := e.Export(context.Background(), ExportRequest{Document: sampleDoc()})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, "%PDF-1.4", string(out.Data))
}

func TestExporter_StopsWhenCallerGivesUp(t *testing.T) {
	fallback := &fakeStrategy{name: "inline", out: []byte("%PDF-1.4")}
	e := newTestExporter(hangingStrategy{}, fallback)
	e.timeout = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := e.Export(ctx, ExportRequest{Document: sampleDoc()})
	var exportErr *domain.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, fallback.calls)
}

func TestExporter_NoStrategies(t *testing.T) {
	_, err := newTestExporter().Export(context.Background(), ExportRequest{Document: sampleDoc()})
	var exportErr *domain.ExportError
	assert.ErrorAs(t, err, &exportErr)
}

func TestExporter_RequestOverridesTemplate(t *testing.T) {
	e := newTestExporter()
	page := e.Page(ExportRequest{Document: sampleDoc(), Template: "TemplateFive", ColorPalette: []string{"#000000"}})
	assert.Equal(t, "creative", page.Variant)
	assert.Equal(t, "#000000", page.Palette.Primary)

	page = e.Page(ExportRequest{Document: sampleDoc()})
	assert.Equal(t, "classic", page.Variant)
}

func TestFilename(t *testing.T) {
	cases := []struct{ explicit, title, want string }{
		{"", "My Resume!", "my-resume.pdf"},
		{"", "", "resume.pdf"},
		{"", "Ünïcode only", "n-code-only.pdf"},
		{"cv.pdf", "ignored", "cv.pdf"},
		{`../../etc/"passwd"`, "x", "passwd.pdf"},
		{"   ", "Title", "title.pdf"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Filename(c.explicit, c.title), "%q/%q", c.explicit, c.title)
	}
}
