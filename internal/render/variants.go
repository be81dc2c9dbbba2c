package render

import "resume-builder/internal/domain"

// Variant lays out a document for one template. Variants decide placement
// and display style only; which sections exist is decided by collect.
type Variant interface {
	ID() TemplateID
	Name() string
	Layout(doc domain.ResumeContent, p Palette) Page
}

func newPage(v Variant, doc domain.ResumeContent, p Palette, columns int) Page {
	return Page{
		Title:    doc.Title,
		Template: v.ID(),
		Variant:  v.Name(),
		WidthPx:  PageWidthPx,
		HeightPx: PageHeightPx,
		Palette:  p,
		Columns:  columns,
	}
}

// classic: one column, everything as lists.
type classic struct{}

func (classic) ID() TemplateID { return TemplateOne }
func (classic) Name() string   { return "classic" }

func (v classic) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 1)
	page.Main = s.pick("", SectionProfile)
	page.Main = append(page.Main, s.pick(StyleInline, SectionContact)...)
	page.Main = append(page.Main, s.pick("",
		SectionExperience, SectionEducation, SectionProjects, SectionSkills,
		SectionCertifications, SectionLanguages, SectionInterests)...)
	return page
}

// sidebar: contact and rated lists on the left, history on the right.
type sidebar struct{}

func (sidebar) ID() TemplateID { return TemplateTwo }
func (sidebar) Name() string   { return "sidebar" }

func (v sidebar) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 2)
	page.Sidebar = s.pick("", SectionContact)
	page.Sidebar = append(page.Sidebar, s.pick(StyleMeter, SectionSkills, SectionLanguages)...)
	page.Sidebar = append(page.Sidebar, s.pick(StyleTags, SectionInterests)...)
	page.Main = s.pick("", SectionProfile, SectionExperience, SectionProjects, SectionEducation, SectionCertifications)
	return page
}

// banner: full-width header band, narrow right column for facts.
type banner struct{}

func (banner) ID() TemplateID { return TemplateThree }
func (banner) Name() string   { return "banner" }

func (v banner) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 2)
	page.Main = s.pick("", SectionProfile, SectionExperience, SectionProjects)
	page.Sidebar = s.pick("", SectionContact, SectionEducation)
	page.Sidebar = append(page.Sidebar, s.pick(StyleTags, SectionSkills)...)
	page.Sidebar = append(page.Sidebar, s.pick("", SectionCertifications)...)
	page.Sidebar = append(page.Sidebar, s.pick(StyleTags, SectionLanguages, SectionInterests)...)
	return page
}

// compact: one dense column, short lists collapse into tags.
type compact struct{}

func (compact) ID() TemplateID { return TemplateFour }
func (compact) Name() string   { return "compact" }

func (v compact) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 1)
	page.Main = s.pick("", SectionProfile)
	page.Main = append(page.Main, s.pick(StyleInline, SectionContact)...)
	page.Main = append(page.Main, s.pick("", SectionExperience, SectionProjects, SectionEducation)...)
	page.Main = append(page.Main, s.pick(StyleTags, SectionSkills)...)
	page.Main = append(page.Main, s.pick("", SectionCertifications)...)
	page.Main = append(page.Main, s.pick(StyleTags, SectionLanguages, SectionInterests)...)
	return page
}

// creative: photo-led profile, right-hand sidebar with meters.
type creative struct{}

func (creative) ID() TemplateID { return TemplateFive }
func (creative) Name() string   { return "creative" }

func (v creative) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 2)
	page.Main = s.pick("", SectionProfile, SectionExperience, SectionEducation, SectionProjects)
	page.Sidebar = s.pick("", SectionContact)
	page.Sidebar = append(page.Sidebar, s.pick(StyleMeter, SectionSkills, SectionLanguages)...)
	page.Sidebar = append(page.Sidebar, s.pick("", SectionCertifications)...)
	page.Sidebar = append(page.Sidebar, s.pick(StyleTags, SectionInterests)...)
	return page
}

// generic renders every populated section in canonical order with no
// template-specific treatment.
type generic struct{}

func (generic) ID() TemplateID { return "" }
func (generic) Name() string   { return "generic" }

func (v generic) Layout(doc domain.ResumeContent, p Palette) Page {
	s := collect(doc)
	page := newPage(v, doc, p, 1)
	page.Main = s.pick(StylePlain, canonicalOrder...)
	return page
}
