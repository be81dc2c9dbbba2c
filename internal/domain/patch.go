package domain

// ResumePatch carries a partial update. A nil field was not supplied and
// keeps its stored value.
type ResumePatch struct {
	Title          *string           `json:"title,omitempty"`
	Template       *string           `json:"template,omitempty"`
	ColorPalette   *[]string         `json:"colorPalette,omitempty"`
	ProfileInfo    *ProfileInfo      `json:"profileInfo,omitempty"`
	ContactInfo    *ContactInfo      `json:"contactInfo,omitempty"`
	WorkExperience *[]WorkExperience `json:"workExperience,omitempty"`
	Education      *[]Education      `json:"education,omitempty"`
	Skills         *[]Skill          `json:"skills,omitempty"`
	Projects       *[]Project        `json:"projects,omitempty"`
	Certifications *[]Certification  `json:"certifications,omitempty"`
	Languages      *[]Language       `json:"languages,omitempty"`
	Interests      *[]Interest       `json:"interests,omitempty"`
}

// PatchFromContent builds a patch that replaces every field of c.
func PatchFromContent(c ResumeContent) ResumePatch {
	c = c.Clone()
	return ResumePatch{
		Title:          &c.Title,
		Template:       &c.Template,
		ColorPalette:   &c.ColorPalette,
		ProfileInfo:    &c.ProfileInfo,
		ContactInfo:    &c.ContactInfo,
		WorkExperience: &c.WorkExperience,
		Education:      &c.Education,
		Skills:         &c.Skills,
		Projects:       &c.Projects,
		Certifications: &c.Certifications,
		Languages:      &c.Languages,
		Interests:      &c.Interests,
	}
}

// Apply replaces the supplied fields of c.
func (p ResumePatch) Apply(c *ResumeContent) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Template != nil {
		c.Template = *p.Template
	}
	if p.ColorPalette != nil {
		c.ColorPalette = append([]string(nil), (*p.ColorPalette)...)
	}
	if p.ProfileInfo != nil {
		c.ProfileInfo = *p.ProfileInfo
	}
	if p.ContactInfo != nil {
		c.ContactInfo = *p.ContactInfo
	}
	if p.WorkExperience != nil {
		c.WorkExperience = append([]WorkExperience(nil), (*p.WorkExperience)...)
	}
	if p.Education != nil {
		c.Education = append([]Education(nil), (*p.Education)...)
	}
	if p.Skills != nil {
		c.Skills = append([]Skill(nil), (*p.Skills)...)
	}
	if p.Projects != nil {
		c.Projects = append([]Project(nil), (*p.Projects)...)
	}
	if p.Certifications != nil {
		c.Certifications = append([]Certification(nil), (*p.Certifications)...)
	}
	if p.Languages != nil {
		c.Languages = append([]Language(nil), (*p.Languages)...)
	}
	if p.Interests != nil {
		c.Interests = append([]Interest(nil), (*p.Interests)...)
	}
	c.Normalize()
}

// Fields lists the JSON names of the supplied fields in declaration order.
func (p ResumePatch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.Title != nil, "title")
	add(p.Template != nil, "template")
	add(p.ColorPalette != nil, "colorPalette")
	add(p.ProfileInfo != nil, "profileInfo")
	add(p.ContactInfo != nil, "contactInfo")
	add(p.WorkExperience != nil, "workExperience")
	add(p.Education != nil, "education")
	add(p.Skills != nil, "skills")
	add(p.Projects != nil, "projects")
	add(p.Certifications != nil, "certifications")
	add(p.Languages != nil, "languages")
	add(p.Interests != nil, "interests")
	return out
}

func (p ResumePatch) Empty() bool { return len(p.Fields()) == 0 }
