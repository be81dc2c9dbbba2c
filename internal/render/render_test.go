package render

import (
	"strings"
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileOnly() domain.ResumeContent {
	doc := domain.NewResumeContent("Backend CV")
	doc.ProfileInfo = domain.ProfileInfo{FullName: "Ada Lovelace", Designation: "Engineer", Summary: "Writes programs."}
	return doc
}

func TestRender_ProfileOnlyOmitsEmptySections(t *testing.T) {
	for _, id := range Known() {
		t.Run(string(id), func(t *testing.T) {
			page := Render(profileOnly(), string(id), nil)

			assert.Equal(t, id, page.Template)
			assert.False(t, page.Fallback)
			assert.True(t, page.Has(SectionProfile))
			for _, kind := range canonicalOrder[1:] {
				assert.False(t, page.Has(kind), "unexpected %s section", kind)
			}
		})
	}
}

func TestRender_BlankRowsDoNotCreateSections(t *testing.T) {
	doc := profileOnly()
	doc.Skills = []domain.Skill{{Name: "  ", Proficiency: 1}}
	doc.WorkExperience = []domain.WorkExperience{{}}

	page := Render(doc, "TemplateTwo", nil)
	assert.False(t, page.Has(SectionSkills))
	assert.False(t, page.Has(SectionExperience))
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	doc := profileOnly()
	doc.Skills = []domain.Skill{{Name: "Go", Proficiency: 4}}

	var page Page
	require.NotPanics(t, func() { page = Render(doc, "TemplateNinety", nil) })

	assert.True(t, page.Fallback)
	assert.Equal(t, "generic", page.Variant)
	assert.Equal(t, "TemplateNinety", page.Requested)
	assert.Equal(t, 1, page.Columns)
	require.Len(t, page.Main, 2)
	assert.Equal(t, SectionProfile, page.Main[0].Kind)
	assert.Equal(t, StylePlain, page.Main[1].Style)

	html, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "Ada Lovelace")
}

func TestVariantFor_EveryKnownTemplateHasItsOwnVariant(t *testing.T) {
	seen := map[string]TemplateID{}
	for _, id := range Known() {
		v := variantFor(id)
		assert.Equal(t, id, v.ID())
		assert.NotEqual(t, "generic", v.Name(), "%s falls through to generic", id)
		if prev, ok := seen[v.Name()]; ok {
			t.Errorf("%s and %s share variant %s", prev, id, v.Name())
		}
		seen[v.Name()] = id
	}
}

func TestParse_IsCaseInsensitive(t *testing.T) {
	id, ok := Parse(" templatethree ")
	assert.True(t, ok)
	assert.Equal(t, TemplateThree, id)

	_, ok = Parse("")
	assert.False(t, ok)
}

func TestNewPalette(t *testing.T) {
	p := NewPalette([]string{"#ff0000", "not-a-color"})
	assert.Equal(t, "#FF0000", p.Primary)
	assert.Equal(t, domain.DefaultColorPalette[1], p.Secondary)
	assert.Equal(t, domain.DefaultColorPalette[2], p.Tertiary)

	assert.Equal(t, domain.DefaultColorPalette, NewPalette(nil).Slots())
}

func TestRender_PaletteAppliedInEveryVariant(t *testing.T) {
	colors := []string{"#111111", "#222222", "#333333"}
	for _, id := range append(Known(), "unknown") {
		page := Render(profileOnly(), string(id), colors)
		assert.Equal(t, colors, page.Palette.Slots())

		css, err := page.Stylesheet()
		require.NoError(t, err)
		assert.Contains(t, css, "--primary: #111111")
		assert.Contains(t, css, "--secondary: #222222")
		assert.Contains(t, css, "--tertiary: #333333")
	}
}

func TestRender_PageSizeIsA4(t *testing.T) {
	page := RenderDocument(profileOnly())
	assert.Equal(t, 794, page.WidthPx)
	assert.Equal(t, 1123, page.HeightPx)
	assert.Equal(t, TemplateOne, page.Template)
}

func TestRender_CurrentPositionShowsPresent(t *testing.T) {
	doc := profileOnly()
	doc.WorkExperience = []domain.WorkExperience{{Company: "Acme", Role: "Dev", StartDate: "2021-01"}}

	page := Render(doc, "TemplateOne", nil)
	var meta string
	for _, s := range page.Sections() {
		if s.Kind == SectionExperience {
			meta = s.Entries[0].Meta
		}
	}
	assert.Equal(t, "2021-01 – Present", meta)
}

func TestHTML_EscapesContentAndLinksProjects(t *testing.T) {
	doc := profileOnly()
	doc.ProfileInfo.FullName = "<script>alert(1)</script>"
	doc.Projects = []domain.Project{{Title: "Compiler", GitHub: "https://github.com/ada/compiler"}}
	doc.ContactInfo.Email = "ada@example.com"

	for _, id := range Known() {
		html, err := Render(doc, string(id), nil).HTML()
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, `href="https://github.com/ada/compiler"`)
		assert.Contains(t, html, "github.com/ada/compiler</a>")
		assert.Contains(t, html, "mailto:ada@example.com")
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	}
}

func TestLinkLabel(t *testing.T) {
	cases := map[string]string{
		"https://github.com/ada":            "github.com/ada",
		"https://uk.linkedin.com/in/mike/":  "linkedin.com/in/mike",
		"www.example.co.uk":                 "example.co.uk",
		"http://blog.example.com/posts/1":   "example.com/posts/1",
		"not a url":                         "not a url",
	}
	for in, want := range cases {
		assert.Equal(t, want, linkLabel(in), in)
	}
}
