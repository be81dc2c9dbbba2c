package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTemplate = "TemplateOne"

// DefaultColorPalette is primary, secondary, tertiary accent.
var DefaultColorPalette = []string{"#3B82F6", "#1E40AF", "#1D4ED8"}

// Resume is one persisted résumé owned by a single user.
type Resume struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	ResumeContent
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResumeContent is the user-editable part of a résumé. Collections keep
// display order; list position is the only identity an entry has.
type ResumeContent struct {
	Title          string           `json:"title" bson:"title"`
	Template       string           `json:"template" bson:"template"`
	ColorPalette   []string         `json:"colorPalette" bson:"color_palette"`
	ProfileInfo    ProfileInfo      `json:"profileInfo" bson:"profile_info"`
	ContactInfo    ContactInfo      `json:"contactInfo" bson:"contact_info"`
	WorkExperience []WorkExperience `json:"workExperience" bson:"work_experience"`
	Education      []Education      `json:"education" bson:"education"`
	Skills         []Skill          `json:"skills" bson:"skills"`
	Projects       []Project        `json:"projects" bson:"projects"`
	Certifications []Certification  `json:"certifications" bson:"certifications"`
	Languages      []Language       `json:"languages" bson:"languages"`
	Interests      []Interest       `json:"interests" bson:"interests"`
}

type ProfileInfo struct {
	FullName          string  `json:"fullName" bson:"full_name"`
	Designation       string  `json:"designation" bson:"designation"`
	Summary           string  `json:"summary" bson:"summary"`
	ProfilePictureURL *string `json:"profilePictureUrl" bson:"profile_picture_url,omitempty"`
	// ProfilePreviewURL only lives while a picture is being cropped/uploaded.
	ProfilePreviewURL *string `json:"profilePreviewUrl" bson:"profile_preview_url,omitempty"`
}

type ContactInfo struct {
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Location string `json:"location" bson:"location"`
	LinkedIn string `json:"linkedin" bson:"linkedin"`
	GitHub   string `json:"github" bson:"github"`
	Website  string `json:"website" bson:"website"`
}

// WorkExperience with an empty EndDate is the current position.
type WorkExperience struct {
	Company     string `json:"company" bson:"company"`
	Role        string `json:"role" bson:"role"`
	StartDate   string `json:"startDate" bson:"start_date"`
	EndDate     string `json:"endDate" bson:"end_date"`
	Description string `json:"description" bson:"description"`
}

func (w WorkExperience) Current() bool { return strings.TrimSpace(w.EndDate) == "" }

type Education struct {
	Degree      string `json:"degree" bson:"degree"`
	Institution string `json:"institution" bson:"institution"`
	StartDate   string `json:"startDate" bson:"start_date"`
	EndDate     string `json:"endDate" bson:"end_date"`
}

// Skill proficiency is 1..5.
type Skill struct {
	Name        string `json:"name" bson:"name"`
	Proficiency int    `json:"proficiency" bson:"proficiency"`
}

type Project struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	GitHub      string `json:"github,omitempty" bson:"github,omitempty"`
	LiveDemo    string `json:"liveDemo,omitempty" bson:"live_demo,omitempty"`
}

// Certification year is a 4-digit string.
type Certification struct {
	Title  string `json:"title" bson:"title"`
	Issuer string `json:"issuer" bson:"issuer"`
	Year   string `json:"year" bson:"year"`
}

type Language struct {
	Name        string `json:"name" bson:"name"`
	Proficiency int    `json:"proficiency" bson:"proficiency"`
}

type Interest struct {
	Name string `json:"name" bson:"name"`
}

// NewResumeContent returns the empty document a "create resume" starts from.
func NewResumeContent(title string) ResumeContent {
	c := ResumeContent{Title: title}
	c.Normalize()
	return c
}

// Normalize fills the default template and palette, trims the title and
// replaces nil collections with empty ones.
func (c *ResumeContent) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	if strings.TrimSpace(c.Template) == "" {
		c.Template = DefaultTemplate
	}
	if len(c.ColorPalette) == 0 {
		c.ColorPalette = append([]string(nil), DefaultColorPalette...)
	}
	if c.WorkExperience == nil {
		c.WorkExperience = []WorkExperience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.Skills == nil {
		c.Skills = []Skill{}
	}
	if c.Projects == nil {
		c.Projects = []Project{}
	}
	if c.Certifications == nil {
		c.Certifications = []Certification{}
	}
	if c.Languages == nil {
		c.Languages = []Language{}
	}
	if c.Interests == nil {
		c.Interests = []Interest{}
	}
}

// Clone returns a deep, normalized copy.
func (c ResumeContent) Clone() ResumeContent {
	out := c
	out.ColorPalette = append([]string(nil), c.ColorPalette...)
	out.ProfileInfo.ProfilePictureURL = cloneString(c.ProfileInfo.ProfilePictureURL)
	out.ProfileInfo.ProfilePreviewURL = cloneString(c.ProfileInfo.ProfilePreviewURL)
	out.WorkExperience = append([]WorkExperience(nil), c.WorkExperience...)
	out.Education = append([]Education(nil), c.Education...)
	out.Skills = append([]Skill(nil), c.Skills...)
	out.Projects = append([]Project(nil), c.Projects...)
	out.Certifications = append([]Certification(nil), c.Certifications...)
	out.Languages = append([]Language(nil), c.Languages...)
	out.Interests = append([]Interest(nil), c.Interests...)
	out.Normalize()
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
