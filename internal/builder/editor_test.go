package builder

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestListEditor_EditsFlowIntoSession(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")
	ed := SkillsEditor(s)

	ed.Add()
	require.NoError(t, ed.Edit(0, func(sk *domain.Skill) { sk.Name = "Go" }))
	ed.Add()
	require.NoError(t, ed.Edit(1, func(sk *domain.Skill) { sk.Name = "SQL" }))

	assert.Equal(t, []domain.Skill{{Name: "Go", Proficiency: 1}, {Name: "SQL", Proficiency: 1}}, s.Document().Skills)

	require.NoError(t, ed.Remove(0))
	assert.Equal(t, []domain.Skill{{Name: "SQL", Proficiency: 1}}, s.Document().Skills)
	assert.Error(t, ed.Remove(5))
}

func TestListEditor_SyncOnlyOnNewGeneration(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")
	ed := SkillsEditor(s)
	ed.Add()

	// own edit: same generation, nothing to adopt
	assert.False(t, ed.Sync(s.Document().Skills, s.Generation()))
	assert.Equal(t, 1, ed.Len())

	s.New("another")
	assert.True(t, ed.Sync(s.Document().Skills, s.Generation()))
	assert.Equal(t, 0, ed.Len())
}

func TestEditor_SyncDoesNotCallBack(t *testing.T) {
	calls := 0
	ed := NewEditor(domain.ContactInfo{}, 1, func(domain.ContactInfo) { calls++ })

	ed.Edit(func(c *domain.ContactInfo) { c.Email = "a@b.co" })
	assert.Equal(t, 1, calls)

	assert.True(t, ed.Sync(domain.ContactInfo{Email: "x@y.co"}, 2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "x@y.co", ed.Value().Email)
}

func TestProfileEditor(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")
	ed := ProfileEditor(s)

	ed.Edit(func(p *domain.ProfileInfo) { p.FullName = "Ann Lee" })
	assert.Equal(t, "Ann Lee", s.Document().ProfileInfo.FullName)
}

func TestSectionEditors_EverySectionIsBound(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")

	ContactEditor(s).Edit(func(c *domain.ContactInfo) { c.Email = "ann@example.com" })
	work := WorkExperienceEditor(s)
	work.Add()
	require.NoError(t, work.Edit(0, func(w *domain.WorkExperience) { w.Company = "Acme" }))
	edu := EducationEditor(s)
	edu.Add()
	require.NoError(t, edu.Edit(0, func(e *domain.Education) { e.Degree = "BSc" }))
	projects := ProjectsEditor(s)
	projects.Add()
	require.NoError(t, projects.Edit(0, func(p *domain.Project) { p.Title = "Parser" }))
	certs := CertificationsEditor(s)
	certs.Add()
	require.NoError(t, certs.Edit(0, func(c *domain.Certification) { c.Issuer = "CNCF" }))
	langs := LanguagesEditor(s)
	langs.Add()
	interests := InterestsEditor(s)
	interests.Add()
	require.NoError(t, interests.Edit(0, func(i *domain.Interest) { i.Name = "Chess" }))

	doc := s.Document()
	assert.Equal(t, "ann@example.com", doc.ContactInfo.Email)
	assert.Equal(t, "Acme", doc.WorkExperience[0].Company)
	assert.Equal(t, "BSc", doc.Education[0].Degree)
	assert.Equal(t, "Parser", doc.Projects[0].Title)
	assert.Equal(t, "CNCF", doc.Certifications[0].Issuer)
	assert.Equal(t, []domain.Language{{Proficiency: 1}}, doc.Languages)
	assert.Equal(t, []domain.Interest{{Name: "Chess"}}, doc.Interests)
}

func TestSectionEditors_UpdateFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewSession(newFakeGateway(), zap.New(core))
	s.New("cv")

	ed := NewEditor(domain.Interest{}, s.Generation(), pushTo[domain.Interest](s, "hobbies"))
	ed.Edit(func(i *domain.Interest) { i.Name = "Chess" })

	assert.Equal(t, "Chess", ed.Value().Name)
	entries := logs.FilterMessage("update section").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hobbies", entries[0].ContextMap()["section"])
}
