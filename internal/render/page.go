package render

import (
	"net/url"
	"strings"

	"resume-builder/internal/domain"

	"golang.org/x/net/publicsuffix"
)

// A4 at 96 dpi.
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

type SectionKind string

const (
	SectionProfile        SectionKind = "profile"
	SectionContact        SectionKind = "contact"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionProjects       SectionKind = "projects"
	SectionCertifications SectionKind = "certifications"
	SectionLanguages      SectionKind = "languages"
	SectionInterests      SectionKind = "interests"
)

// canonicalOrder is the order the generic layout uses.
var canonicalOrder = []SectionKind{
	SectionProfile,
	SectionContact,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
	SectionCertifications,
	SectionLanguages,
	SectionInterests,
}

// Display styles a variant may pick for a section.
const (
	StyleList   = "list"
	StyleMeter  = "meter"
	StyleTags   = "tags"
	StyleInline = "inline"
	StylePlain  = "plain"
)

// Page is the rendered layout of one résumé: a fixed single page with one or
// two columns of sections. Content overflow is not detected.
type Page struct {
	Title     string     `json:"title"`
	Requested string     `json:"requested"`
	Template  TemplateID `json:"template"`
	Variant   string     `json:"variant"`
	Fallback  bool       `json:"fallback"`
	WidthPx   int        `json:"widthPx"`
	HeightPx  int        `json:"heightPx"`
	Palette   Palette    `json:"palette"`
	Columns   int        `json:"columns"`
	Main      []Section  `json:"main"`
	Sidebar   []Section  `json:"sidebar,omitempty"`
}

type Section struct {
	Kind    SectionKind `json:"kind"`
	Title   string      `json:"title"`
	Style   string      `json:"style"`
	Entries []Entry     `json:"entries"`
}

type Entry struct {
	Heading    string `json:"heading,omitempty"`
	Subheading string `json:"subheading,omitempty"`
	Meta       string `json:"meta,omitempty"`
	Body       string `json:"body,omitempty"`
	Image      string `json:"image,omitempty"`
	Level      int    `json:"level,omitempty"`
	Links      []Link `json:"links,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// LevelPercent maps a 1..5 proficiency to a meter width.
func (e Entry) LevelPercent() int {
	switch {
	case e.Level <= 0:
		return 0
	case e.Level >= 5:
		return 100
	}
	return e.Level * 20
}

// Sections returns main column sections followed by sidebar ones.
func (p Page) Sections() []Section {
	out := make([]Section, 0, len(p.Main)+len(p.Sidebar))
	out = append(out, p.Main...)
	return append(out, p.Sidebar...)
}

func (p Page) Has(kind SectionKind) bool {
	for _, s := range p.Sections() {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// sectionSet holds the populated sections of one document. Blank rows do
// not count, so a collection made only of blank rows yields no section.
type sectionSet map[SectionKind]Section

func collect(doc domain.ResumeContent) sectionSet {
	set := sectionSet{}
	add := func(kind SectionKind, title string, entries []Entry) {
		if len(entries) > 0 {
			set[kind] = Section{Kind: kind, Title: title, Style: StyleList, Entries: entries}
		}
	}

	add(SectionProfile, "", profileEntries(doc.ProfileInfo))
	add(SectionContact, "Contact", contactEntries(doc.ContactInfo))

	var exp []Entry
	for _, w := range doc.WorkExperience {
		if blank(w.Company, w.Role, w.StartDate, w.EndDate, w.Description) {
			continue
		}
		end := w.EndDate
		if w.Current() {
			end = "Present"
		}
		exp = append(exp, Entry{Heading: w.Role, Subheading: w.Company, Meta: period(w.StartDate, end), Body: w.Description})
	}
	add(SectionExperience, "Work Experience", exp)

	var edu []Entry
	for _, e := range doc.Education {
		if blank(e.Degree, e.Institution, e.StartDate, e.EndDate) {
			continue
		}
		edu = append(edu, Entry{Heading: e.Degree, Subheading: e.Institution, Meta: period(e.StartDate, e.EndDate)})
	}
	add(SectionEducation, "Education", edu)

	var skills []Entry
	for _, s := range doc.Skills {
		if blank(s.Name) {
			continue
		}
		skills = append(skills, Entry{Heading: s.Name, Level: s.Proficiency})
	}
	add(SectionSkills, "Skills", skills)

	var projects []Entry
	for _, p := range doc.Projects {
		if blank(p.Title, p.Description, p.GitHub, p.LiveDemo) {
			continue
		}
		e := Entry{Heading: p.Title, Body: p.Description}
		if l, ok := newLink(p.GitHub); ok {
			e.Links = append(e.Links, l)
		}
		if l, ok := newLink(p.LiveDemo); ok {
			e.Links = append(e.Links, l)
		}
		projects = append(projects, e)
	}
	add(SectionProjects, "Projects", projects)

	var certs []Entry
	for _, c := range doc.Certifications {
		if blank(c.Title, c.Issuer, c.Year) {
			continue
		}
		certs = append(certs, Entry{Heading: c.Title, Subheading: c.Issuer, Meta: c.Year})
	}
	add(SectionCertifications, "Certifications", certs)

	var langs []Entry
	for _, l := range doc.Languages {
		if blank(l.Name) {
			continue
		}
		langs = append(langs, Entry{Heading: l.Name, Level: l.Proficiency})
	}
	add(SectionLanguages, "Languages", langs)

	var interests []Entry
	for _, i := range doc.Interests {
		if blank(i.Name) {
			continue
		}
		interests = append(interests, Entry{Heading: i.Name})
	}
	add(SectionInterests, "Interests", interests)

	return set
}

// pick returns the populated sections among kinds, in that order, with the
// given style applied.
func (s sectionSet) pick(style string, kinds ...SectionKind) []Section {
	var out []Section
	for _, k := range kinds {
		sec, ok := s[k]
		if !ok {
			continue
		}
		if style != "" {
			sec.Style = style
		}
		out = append(out, sec)
	}
	return out
}

func profileEntries(p domain.ProfileInfo) []Entry {
	if blank(p.FullName, p.Designation, p.Summary) && p.ProfilePictureURL == nil {
		return nil
	}
	e := Entry{Heading: p.FullName, Subheading: p.Designation, Body: p.Summary}
	if p.ProfilePictureURL != nil {
		e.Image = strings.TrimSpace(*p.ProfilePictureURL)
	}
	return []Entry{e}
}

func contactEntries(c domain.ContactInfo) []Entry {
	var out []Entry
	if v := strings.TrimSpace(c.Email); v != "" {
		out = append(out, Entry{Heading: "Email", Body: v, Links: []Link{{Label: v, URL: "mailto:" + v}}})
	}
	if v := strings.TrimSpace(c.Phone); v != "" {
		out = append(out, Entry{Heading: "Phone", Body: v})
	}
	if v := strings.TrimSpace(c.Location); v != "" {
		out = append(out, Entry{Heading: "Location", Body: v})
	}
	for _, item := range []struct{ label, raw string }{
		{"LinkedIn", c.LinkedIn},
		{"GitHub", c.GitHub},
		{"Website", c.Website},
	} {
		if l, ok := newLink(item.raw); ok {
			out = append(out, Entry{Heading: item.label, Body: l.Label, Links: []Link{l}})
		}
	}
	return out
}

func newLink(raw string) (Link, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Link{}, false
	}
	return Link{Label: linkLabel(raw), URL: raw}, true
}

// linkLabel shortens a URL to registrable domain plus path, e.g.
// "https://uk.linkedin.com/in/mike/" becomes "linkedin.com/in/mike".
func linkLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld
	}
	if p := strings.Trim(u.EscapedPath(), "/"); p != "" {
		label += "/" + p
	}
	return label
}

func period(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " – " + end
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
