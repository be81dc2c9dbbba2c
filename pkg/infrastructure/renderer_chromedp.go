package infrastructure

import (
	"context"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4: 210mm x 297mm -> inches: 8.27 x 11.69
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// Chrome holds the browser settings shared by the print strategies. Each
// print starts its own headless browser, so concurrent exports do not share
// tabs.
type Chrome struct {
	ExecPath string
}

func NewChrome(execPath string) *Chrome { return &Chrome{ExecPath: execPath} }

func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	return chromedp.Run(cctx, actions...)
}

func printA4(out *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		*out, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(paperWidthIn).
			WithPaperHeight(paperHeightIn).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	})
}

// FilePrinter writes the page to a temporary directory and prints it from a
// file:// URL.
type FilePrinter struct{ chrome *Chrome }

func NewFilePrinter(c *Chrome) *FilePrinter { return &FilePrinter{chrome: c} }

func (p *FilePrinter) Name() string { return "file" }

func (p *FilePrinter) Print(ctx context.Context, html string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	var pdf []byte
	err = p.chrome.run(ctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		printA4(&pdf),
	)
	return pdf, err
}

// InlinePrinter loads the markup straight into a blank tab, for hosts where
// the browser cannot read the temp directory.
type InlinePrinter struct{ chrome *Chrome }

func NewInlinePrinter(c *Chrome) *InlinePrinter { return &InlinePrinter{chrome: c} }

func (p *InlinePrinter) Name() string { return "inline" }

func (p *InlinePrinter) Print(ctx context.Context, html string) ([]byte, error) {
	var pdf []byte
	err := p.chrome.run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		printA4(&pdf),
	)
	return pdf, err
}
