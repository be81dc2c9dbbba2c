// Package render maps a résumé document onto one of the fixed page layouts
// and materializes the result as printable HTML.
package render

import "resume-builder/internal/domain"

// Render lays out doc with the template named by templateID and the given
// color palette. Unknown ids use the generic layout.
func Render(doc domain.ResumeContent, templateID string, colors []string) Page {
	id, known := Parse(templateID)
	v := variantFor(id)
	page := v.Layout(doc, NewPalette(colors))
	page.Requested = templateID
	page.Fallback = !known
	return page
}

// RenderDocument uses the template and palette stored on the document.
func RenderDocument(doc domain.ResumeContent) Page {
	return Render(doc, doc.Template, doc.ColorPalette)
}
