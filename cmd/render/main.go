// Command render lays out a résumé JSON file with one of the templates and
// writes the HTML, or the PDF with -pdf. Used while working on templates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"resume-builder/internal/logging"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	in := flag.String("in", "resume.json", "résumé document (JSON)")
	out := flag.String("out", "", "output file (default: <in> with .html or .pdf)")
	tpl := flag.String("template", "", "template id, overrides the document's")
	asPDF := flag.Bool("pdf", false, "print to PDF through Chrome")
	chromePath := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome executable")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read document: %v\n", err)
		os.Exit(2)
	}
	doc, err := usecase.DecodeDocument(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode document: %v\n", err)
		os.Exit(2)
	}

	logger, _ := logging.New("info", "console")
	chrome := infra.NewChrome(*chromePath)
	exporter := usecase.NewExporter([]usecase.PDFStrategy{
		infra.NewFilePrinter(chrome),
		infra.NewInlinePrinter(chrome),
	}, time.Minute, logger)

	req := usecase.ExportRequest{Document: doc, Template: *tpl}
	page := exporter.Page(req)
	if page.Fallback {
		fmt.Fprintf(os.Stderr, "unknown template %q, using the generic layout\n", page.Requested)
	}

	var data []byte
	ext := ".html"
	if *asPDF {
		ext = ".pdf"
		res, err := exporter.Export(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		data = res.Data
	} else {
		html, err := page.HTML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
		data = []byte(html)
	}

	outFile := *out
	if outFile == "" {
		outFile = strings.TrimSuffix(*in, ".json") + ext
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s (%s, %d bytes)\n", outFile, page.Template, len(data))
}
