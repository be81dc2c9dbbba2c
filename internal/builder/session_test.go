package builder

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	stored    map[uuid.UUID]domain.Resume
	err       error
	creates   int
	updates   int
	onRequest func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{stored: map[uuid.UUID]domain.Resume{}}
}

func (g *fakeGateway) save(id uuid.UUID, c domain.ResumeContent) (domain.Resume, error) {
	if g.onRequest != nil {
		g.onRequest()
	}
	if g.err != nil {
		return domain.Resume{}, g.err
	}
	now := time.Now().UTC()
	r := domain.Resume{ID: id, UserID: uuid.New(), ResumeContent: c.Clone(), CreatedAt: now, UpdatedAt: now}
	g.stored[id] = r
	return r, nil
}

func (g *fakeGateway) Create(_ context.Context, c domain.ResumeContent) (domain.Resume, error) {
	g.creates++
	return g.save(uuid.New(), c)
}

func (g *fakeGateway) Get(_ context.Context, id uuid.UUID) (domain.Resume, error) {
	if g.err != nil {
		return domain.Resume{}, g.err
	}
	r, ok := g.stored[id]
	if !ok {
		return domain.Resume{}, domain.ErrNotFound
	}
	return r, nil
}

func (g *fakeGateway) Update(_ context.Context, id uuid.UUID, c domain.ResumeContent) (domain.Resume, error) {
	g.updates++
	return g.save(id, c)
}

func (g *fakeGateway) Delete(_ context.Context, id uuid.UUID) error {
	if g.err != nil {
		return g.err
	}
	delete(g.stored, id)
	return nil
}

func (g *fakeGateway) Export(_ context.Context, c domain.ResumeContent, _ string) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF " + c.Title), nil
}

func completeProfile(s *Session) {
	_ = s.UpdateSection(SectionProfileInfo, domain.ProfileInfo{FullName: "Mike Ross", Designation: "Engineer", Summary: "Builds things"})
	_ = s.UpdateSection(SectionContactInfo, domain.ContactInfo{Email: "mike@example.com", Phone: "+1 555 0100"})
}

func TestSession_NextStepBlocksOnMissingFields(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("Mike's Resume")

	assert.False(t, s.NextStep())
	idx, step := s.Step()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "profile-info", step.ID)
	assert.Contains(t, s.Messages(), "Full name is required")

	completeProfile(s)
	assert.True(t, s.NextStep())
	assert.Empty(t, s.Messages())
	_, step = s.Step()
	assert.Equal(t, "contact-info", step.ID)
}

func TestSession_StepBounds(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")

	assert.False(t, s.BackStep())
	s.GoTo(100)
	idx, step := s.Step()
	assert.Equal(t, len(Steps)-1, idx)
	assert.Equal(t, "additional-info", step.ID)
	assert.False(t, s.NextStep())

	// BackStep never validates
	_ = s.UpdateSection(SectionLanguages, []domain.Language{{Name: ""}})
	assert.True(t, s.BackStep())
	s.GoTo(-3)
	idx, _ = s.Step()
	assert.Equal(t, 0, idx)
}

func TestSession_RowValidationMessages(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")
	s.GoTo(4)
	require.NoError(t, s.UpdateSection(SectionSkills, []domain.Skill{{Name: "Go", Proficiency: 3}, {Name: "", Proficiency: 0}}))

	assert.False(t, s.NextStep())
	assert.Equal(t, []string{
		"Skill #2: name is required",
		"Skill #2: proficiency must be between 1 and 5",
	}, s.Messages())
}

func TestSession_UpdateSectionRejectsWrongType(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("cv")

	assert.ErrorIs(t, s.UpdateSection("hobbies", nil), ErrUnknownSection)
	assert.Error(t, s.UpdateSection(SectionSkills, []string{"Go"}))
	assert.Empty(t, s.Document().Skills)
}

func TestSession_SaveCreatesThenUpdates(t *testing.T) {
	gw := newFakeGateway()
	s := NewSession(gw, nil)
	s.New("Mike's Resume")
	completeProfile(s)
	gen := s.Generation()

	require.NoError(t, s.Save(context.Background(), false))
	doc := s.Document()
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, 1, gw.creates)
	assert.Greater(t, s.Generation(), gen)
	assert.Equal(t, ViewEditor, s.View())

	s.SelectTemplate("TemplateThree")
	s.SelectColorPalette([]string{"#000000", "#111111", "#222222"})
	require.NoError(t, s.Save(context.Background(), true))
	assert.Equal(t, 1, gw.updates)
	assert.Equal(t, "TemplateThree", gw.stored[doc.ID].Template)
	assert.Equal(t, "#111111", gw.stored[doc.ID].ColorPalette[1])

	assert.Equal(t, ViewListing, s.View())
	assert.Equal(t, uuid.Nil, s.Document().ID)
}

func TestSession_FailedSaveKeepsEdits(t *testing.T) {
	gw := newFakeGateway()
	gw.err = &domain.ValidationError{Fields: []domain.FieldError{{Field: "title", Message: "must not be empty"}}}
	s := NewSession(gw, nil)
	s.New("")
	completeProfile(s)

	err := s.Save(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, "Mike Ross", s.Document().ProfileInfo.FullName)
	assert.Equal(t, ViewEditor, s.View())
	assert.Contains(t, Notice(err), "title: must not be empty")
}

func TestSession_EditsDuringSaveSurvive(t *testing.T) {
	gw := newFakeGateway()
	s := NewSession(gw, nil)
	s.New("cv")
	gw.onRequest = func() { s.SelectTemplate("TemplateTwo") }

	require.NoError(t, s.Save(context.Background(), false))
	doc := s.Document()
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, "TemplateTwo", doc.Template)
}

func TestSession_SaveResponseIgnoredAfterSwitchingResume(t *testing.T) {
	gw := newFakeGateway()
	s := NewSession(gw, nil)
	s.New("A")
	gw.onRequest = func() { s.New("B") }

	require.NoError(t, s.Save(context.Background(), true))
	require.Len(t, gw.stored, 1)

	doc := s.Document()
	assert.Equal(t, "B", doc.Title)
	assert.Equal(t, uuid.Nil, doc.ID)
	assert.Equal(t, ViewEditor, s.View())

	// B is created on its own instead of overwriting A
	gw.onRequest = nil
	require.NoError(t, s.Save(context.Background(), false))
	assert.Equal(t, 2, gw.creates)
	assert.Equal(t, 0, gw.updates)
	assert.Len(t, gw.stored, 2)
}

func TestSession_UnauthorizedResets(t *testing.T) {
	gw := newFakeGateway()
	gw.err = domain.ErrUnauthorized
	s := NewSession(gw, nil)
	s.New("cv")
	completeProfile(s)

	err := s.Save(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, ViewListing, s.View())
	assert.Empty(t, s.Document().ProfileInfo.FullName)
}

func TestSession_LoadAndDelete(t *testing.T) {
	gw := newFakeGateway()
	s := NewSession(gw, nil)
	s.New("cv")
	require.NoError(t, s.Save(context.Background(), true))

	var id uuid.UUID
	for k := range gw.stored {
		id = k
	}
	require.NoError(t, s.Load(context.Background(), id))
	assert.Equal(t, "cv", s.Document().Title)
	assert.Equal(t, ViewEditor, s.View())

	require.NoError(t, s.Delete(context.Background()))
	assert.Empty(t, gw.stored)
	assert.Equal(t, ViewListing, s.View())

	assert.ErrorIs(t, s.Load(context.Background(), id), domain.ErrNotFound)
}

func TestSession_Export(t *testing.T) {
	s := NewSession(newFakeGateway(), nil)
	s.New("Draft")

	data, err := s.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF Draft", string(data))
}

func TestNotice(t *testing.T) {
	assert.Empty(t, Notice(nil))
	assert.Equal(t, "Something went wrong, please try again.", Notice(errors.New("connection refused")))
	assert.Equal(t, "This resume no longer exists.", Notice(domain.ErrNotFound))
}
