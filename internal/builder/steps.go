package builder

import (
	"fmt"
	"strings"

	"resume-builder/internal/domain"
)

// StepValidation holds the outcome of a step's required-field check.
type StepValidation struct {
	Valid   bool
	Missing []string
}

func (v *StepValidation) require(ok bool, msg string, args ...any) {
	if ok {
		return
	}
	v.Valid = false
	v.Missing = append(v.Missing, fmt.Sprintf(msg, args...))
}

// Step is one page of the builder wizard.
type Step struct {
	ID       string
	Title    string
	Sections []string
	Validate func(doc domain.ResumeContent) *StepValidation
}

// Steps in wizard order. Additional info covers languages and interests.
var Steps = []Step{
	{ID: "profile-info", Title: "Profile Info", Sections: []string{SectionProfileInfo}, Validate: validateProfile},
	{ID: "contact-info", Title: "Contact Info", Sections: []string{SectionContactInfo}, Validate: validateContact},
	{ID: "work-experience", Title: "Work Experience", Sections: []string{SectionWorkExperience}, Validate: validateExperience},
	{ID: "education-info", Title: "Education", Sections: []string{SectionEducation}, Validate: validateEducation},
	{ID: "skills", Title: "Skills", Sections: []string{SectionSkills}, Validate: validateSkills},
	{ID: "projects", Title: "Projects", Sections: []string{SectionProjects}, Validate: validateProjects},
	{ID: "certifications", Title: "Certifications", Sections: []string{SectionCertifications}, Validate: validateCertifications},
	{ID: "additional-info", Title: "Additional Info", Sections: []string{SectionLanguages, SectionInterests}, Validate: validateAdditional},
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func newValidation() *StepValidation {
	return &StepValidation{Valid: true, Missing: []string{}}
}

func validateProfile(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	p := doc.ProfileInfo
	v.require(filled(p.FullName), "Full name is required")
	v.require(filled(p.Designation), "Designation is required")
	v.require(filled(p.Summary), "Summary is required")
	return v
}

func validateContact(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	c := doc.ContactInfo
	v.require(filled(c.Email), "Email is required")
	v.require(filled(c.Phone), "Phone number is required")
	return v
}

// Collection steps only check rows that exist; an empty list is fine.

func validateExperience(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, w := range doc.WorkExperience {
		n := i + 1
		v.require(filled(w.Company), "Work experience #%d: company is required", n)
		v.require(filled(w.Role), "Work experience #%d: role is required", n)
		v.require(filled(w.StartDate), "Work experience #%d: start date is required", n)
	}
	return v
}

func validateEducation(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, e := range doc.Education {
		n := i + 1
		v.require(filled(e.Degree), "Education #%d: degree is required", n)
		v.require(filled(e.Institution), "Education #%d: institution is required", n)
		v.require(filled(e.StartDate), "Education #%d: start date is required", n)
	}
	return v
}

func validateSkills(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, s := range doc.Skills {
		n := i + 1
		v.require(filled(s.Name), "Skill #%d: name is required", n)
		v.require(s.Proficiency >= 1 && s.Proficiency <= 5, "Skill #%d: proficiency must be between 1 and 5", n)
	}
	return v
}

func validateProjects(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, p := range doc.Projects {
		n := i + 1
		v.require(filled(p.Title), "Project #%d: title is required", n)
		v.require(filled(p.Description), "Project #%d: description is required", n)
	}
	return v
}

func validateCertifications(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, c := range doc.Certifications {
		n := i + 1
		v.require(filled(c.Title), "Certification #%d: title is required", n)
		v.require(filled(c.Issuer), "Certification #%d: issuer is required", n)
		v.require(len(strings.TrimSpace(c.Year)) == 4, "Certification #%d: year must have 4 digits", n)
	}
	return v
}

func validateAdditional(doc domain.ResumeContent) *StepValidation {
	v := newValidation()
	for i, l := range doc.Languages {
		n := i + 1
		v.require(filled(l.Name), "Language #%d: name is required", n)
		v.require(l.Proficiency >= 1 && l.Proficiency <= 5, "Language #%d: proficiency must be between 1 and 5", n)
	}
	for i, it := range doc.Interests {
		v.require(filled(it.Name), "Interest #%d: name is required", i+1)
	}
	return v
}
