package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html templates/*.css
var templatesFS embed.FS

var (
	pageTmplOnce sync.Once
	pageTmpl     *template.Template
	pageTmplErr  error
)

func loadPageTemplate() {
	pageTmpl, pageTmplErr = template.ParseFS(templatesFS, "templates/page.html")
}

// Stylesheet returns the CSS for the page: palette custom properties, the
// shared base rules and the variant's own rules.
func (p Page) Stylesheet() (string, error) {
	base, err := templatesFS.ReadFile("templates/base.css")
	if err != nil {
		return "", err
	}
	variant, err := templatesFS.ReadFile("templates/" + p.Variant + ".css")
	if err != nil {
		return "", fmt.Errorf("stylesheet for %q: %w", p.Variant, err)
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, ":root { --primary: %s; --secondary: %s; --tertiary: %s; }\n",
		p.Palette.Primary, p.Palette.Secondary, p.Palette.Tertiary)
	b.Write(base)
	b.WriteByte('\n')
	b.Write(variant)
	return b.String(), nil
}

// HTML materializes the page as a standalone document with inlined CSS.
func (p Page) HTML() (string, error) {
	pageTmplOnce.Do(loadPageTemplate)
	if pageTmplErr != nil {
		return "", fmt.Errorf("parse page template: %w", pageTmplErr)
	}
	css, err := p.Stylesheet()
	if err != nil {
		return "", err
	}
	data := struct {
		Page  Page
		Style template.CSS
	}{Page: p, Style: template.CSS(css)}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return buf.String(), nil
}
