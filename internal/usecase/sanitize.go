package usecase

import (
	"html"
	"strings"

	"resume-builder/internal/domain"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// plainText drops every tag from s. StrictPolicy escapes what is left, so
// entities are decoded again; the renderer escapes on output.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// checkTitle runs after sanitizing: a title made only of blanks or markup
// passes the schema but ends up empty.
func checkTitle(title string) error {
	if title == "" {
		return invalidField("title", "must not be empty")
	}
	return nil
}

func plainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func sanitizeProfile(p domain.ProfileInfo) domain.ProfileInfo {
	p.FullName = plainText(p.FullName)
	p.Designation = plainText(p.Designation)
	p.Summary = plainText(p.Summary)
	p.ProfilePictureURL = plainTextPtr(p.ProfilePictureURL)
	// preview URLs are local to the editing client
	p.ProfilePreviewURL = nil
	return p
}

func sanitizeContact(c domain.ContactInfo) domain.ContactInfo {
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = plainText(c.Phone)
	c.Location = plainText(c.Location)
	c.LinkedIn = strings.TrimSpace(c.LinkedIn)
	c.GitHub = strings.TrimSpace(c.GitHub)
	c.Website = strings.TrimSpace(c.Website)
	return c
}

// sanitizePatch strips markup from every free-text field the patch carries.
func sanitizePatch(p *domain.ResumePatch) {
	if p.Title != nil {
		v := plainText(*p.Title)
		p.Title = &v
	}
	if p.Template != nil {
		v := strings.TrimSpace(*p.Template)
		p.Template = &v
	}
	if p.ProfileInfo != nil {
		v := sanitizeProfile(*p.ProfileInfo)
		p.ProfileInfo = &v
	}
	if p.ContactInfo != nil {
		v := sanitizeContact(*p.ContactInfo)
		p.ContactInfo = &v
	}
	if p.WorkExperience != nil {
		rows := append([]domain.WorkExperience(nil), (*p.WorkExperience)...)
		for i := range rows {
			rows[i].Company = plainText(rows[i].Company)
			rows[i].Role = plainText(rows[i].Role)
			rows[i].StartDate = plainText(rows[i].StartDate)
			rows[i].EndDate = plainText(rows[i].EndDate)
			rows[i].Description = plainText(rows[i].Description)
		}
		p.WorkExperience = &rows
	}
	if p.Education != nil {
		rows := append([]domain.Education(nil), (*p.Education)...)
		for i := range rows {
			rows[i].Degree = plainText(rows[i].Degree)
			rows[i].Institution = plainText(rows[i].Institution)
			rows[i].StartDate = plainText(rows[i].StartDate)
			rows[i].EndDate = plainText(rows[i].EndDate)
		}
		p.Education = &rows
	}
	if p.Skills != nil {
		rows := append([]domain.Skill(nil), (*p.Skills)...)
		for i := range rows {
			rows[i].Name = plainText(rows[i].Name)
		}
		p.Skills = &rows
	}
	if p.Projects != nil {
		rows := append([]domain.Project(nil), (*p.Projects)...)
		for i := range rows {
			rows[i].Title = plainText(rows[i].Title)
			rows[i].Description = plainText(rows[i].Description)
			rows[i].GitHub = strings.TrimSpace(rows[i].GitHub)
			rows[i].LiveDemo = strings.TrimSpace(rows[i].LiveDemo)
		}
		p.Projects = &rows
	}
	if p.Certifications != nil {
		rows := append([]domain.Certification(nil), (*p.Certifications)...)
		for i := range rows {
			rows[i].Title = plainText(rows[i].Title)
			rows[i].Issuer = plainText(rows[i].Issuer)
			rows[i].Year = strings.TrimSpace(rows[i].Year)
		}
		p.Certifications = &rows
	}
	if p.Languages != nil {
		rows := append([]domain.Language(nil), (*p.Languages)...)
		for i := range rows {
			rows[i].Name = plainText(rows[i].Name)
		}
		p.Languages = &rows
	}
	if p.Interests != nil {
		rows := append([]domain.Interest(nil), (*p.Interests)...)
		for i := range rows {
			rows[i].Name = plainText(rows[i].Name)
		}
		p.Interests = &rows
	}
}

func sanitizeContent(c domain.ResumeContent) domain.ResumeContent {
	p := domain.PatchFromContent(c)
	sanitizePatch(&p)
	var out domain.ResumeContent
	p.Apply(&out)
	return out
}
