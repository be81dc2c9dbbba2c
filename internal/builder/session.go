package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"resume-builder/internal/domain"
	"resume-builder/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Section keys accepted by UpdateSection.
const (
	SectionProfileInfo    = "profileInfo"
	SectionContactInfo    = "contactInfo"
	SectionWorkExperience = "workExperience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionInterests      = "interests"
)

type View string

const (
	ViewListing View = "listing"
	ViewEditor  View = "editor"
)

var ErrUnknownSection = errors.New("unknown section")

// Gateway is the persistence side a session talks to. pkg/client implements
// it over HTTP.
type Gateway interface {
	Create(ctx context.Context, content domain.ResumeContent) (domain.Resume, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Resume, error)
	Update(ctx context.Context, id uuid.UUID, content domain.ResumeContent) (domain.Resume, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, content domain.ResumeContent, filename string) ([]byte, error)
}

// Session is the editable state of one résumé in the builder: the document,
// the wizard position and the outcome of the last step check.
//
// Generation changes whenever the document is replaced from outside (a load,
// a new résumé, the server's copy after a save). Editors resync on a new
// generation only, so their own edits are never echoed back to them.
type Session struct {
	mu         sync.Mutex
	gw         Gateway
	log        *zap.Logger
	doc        domain.Resume
	step       int
	messages   []string
	generation uint64
	revision   uint64
	view       View
}

func NewSession(gw Gateway, log *zap.Logger) *Session {
	return &Session{gw: gw, log: logging.OrNop(log), view: ViewListing}
}

// New starts editing an unsaved résumé.
func (s *Session) New(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(domain.Resume{ResumeContent: domain.NewResumeContent(title)})
	s.step = 0
	s.view = ViewEditor
}

// Load fetches a stored résumé and starts editing it.
func (s *Session) Load(ctx context.Context, id uuid.UUID) error {
	r, err := s.gw.Get(ctx, id)
	if err != nil {
		s.failed("load", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(r)
	s.step = 0
	s.view = ViewEditor
	return nil
}

func (s *Session) replace(r domain.Resume) {
	r.ResumeContent = r.ResumeContent.Clone()
	s.doc = r
	s.messages = nil
	s.generation++
	s.revision++
}

// Document returns a copy of the current document.
func (s *Session) Document() domain.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.doc
	out.ResumeContent = s.doc.ResumeContent.Clone()
	return out
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Step returns the current wizard step.
func (s *Session) Step() (int, Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step, Steps[s.step]
}

// Messages returns what the last step check found missing.
func (s *Session) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// UpdateSection replaces one named section. value must have the section's
// type, e.g. []domain.Skill for "skills".
func (s *Session) UpdateSection(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.doc.ResumeContent
	ok := true
	switch key {
	case SectionProfileInfo:
		var v domain.ProfileInfo
		if v, ok = value.(domain.ProfileInfo); ok {
			c.ProfileInfo = v
		}
	case SectionContactInfo:
		var v domain.ContactInfo
		if v, ok = value.(domain.ContactInfo); ok {
			c.ContactInfo = v
		}
	case SectionWorkExperience:
		var v []domain.WorkExperience
		if v, ok = value.([]domain.WorkExperience); ok {
			c.WorkExperience = append([]domain.WorkExperience{}, v...)
		}
	case SectionEducation:
		var v []domain.Education
		if v, ok = value.([]domain.Education); ok {
			c.Education = append([]domain.Education{}, v...)
		}
	case SectionSkills:
		var v []domain.Skill
		if v, ok = value.([]domain.Skill); ok {
			c.Skills = append([]domain.Skill{}, v...)
		}
	case SectionProjects:
		var v []domain.Project
		if v, ok = value.([]domain.Project); ok {
			c.Projects = append([]domain.Project{}, v...)
		}
	case SectionCertifications:
		var v []domain.Certification
		if v, ok = value.([]domain.Certification); ok {
			c.Certifications = append([]domain.Certification{}, v...)
		}
	case SectionLanguages:
		var v []domain.Language
		if v, ok = value.([]domain.Language); ok {
			c.Languages = append([]domain.Language{}, v...)
		}
	case SectionInterests:
		var v []domain.Interest
		if v, ok = value.([]domain.Interest); ok {
			c.Interests = append([]domain.Interest{}, v...)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	if !ok {
		return fmt.Errorf("section %q does not accept %T", key, value)
	}
	s.revision++
	return nil
}

// SelectTemplate sets the template id as is; unknown ids render with the
// generic layout.
func (s *Session) SelectTemplate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Template = id
	s.revision++
}

func (s *Session) SelectColorPalette(colors []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.ColorPalette = append([]string(nil), colors...)
	s.revision++
}

// NextStep checks the current step and advances when nothing is missing.
// It reports whether the step changed; what is missing is kept in Messages.
func (s *Session) NextStep() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Steps[s.step].Validate(s.doc.ResumeContent)
	s.messages = res.Missing
	if !res.Valid {
		return false
	}
	if s.step == len(Steps)-1 {
		return false
	}
	s.step++
	return true
}

// BackStep never validates.
func (s *Session) BackStep() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	if s.step == 0 {
		return false
	}
	s.step--
	return true
}

// GoTo jumps to a step by index, clamped to the wizard bounds, without
// validating.
func (s *Session) GoTo(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.step = max(0, min(step, len(Steps)-1))
}

// Save sends the whole document: create when it has no id yet, update
// otherwise. The server validates. On failure local edits stay untouched.
// With exitAfterSave the session returns to the listing.
func (s *Session) Save(ctx context.Context, exitAfterSave bool) error {
	s.mu.Lock()
	id := s.doc.ID
	content := s.doc.ResumeContent.Clone()
	rev, gen := s.revision, s.generation
	s.mu.Unlock()

	var (
		saved domain.Resume
		err   error
	)
	if id == uuid.Nil {
		saved, err = s.gw.Create(ctx, content)
	} else {
		saved, err = s.gw.Update(ctx, id, content)
	}
	if err != nil {
		s.failed("save", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// another résumé was loaded meanwhile; the response is not about it
		s.log.Info("resume saved after session moved on", zap.String("resume_id", saved.ID.String()))
		return nil
	}
	if s.revision == rev {
		s.replace(saved)
	} else {
		// edited while the request was in flight; keep those edits
		s.doc.ID, s.doc.UserID = saved.ID, saved.UserID
		s.doc.CreatedAt, s.doc.UpdatedAt = saved.CreatedAt, saved.UpdatedAt
	}
	s.log.Info("resume saved", zap.String("resume_id", saved.ID.String()))
	if exitAfterSave {
		s.clear()
	}
	return nil
}

// Delete removes the stored résumé, clears the session and returns to the
// listing. An unsaved résumé is just discarded.
func (s *Session) Delete(ctx context.Context) error {
	s.mu.Lock()
	id := s.doc.ID
	s.mu.Unlock()

	if id != uuid.Nil {
		if err := s.gw.Delete(ctx, id); err != nil {
			s.failed("delete", err)
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	return nil
}

// Export prints the current document, saved or not.
func (s *Session) Export(ctx context.Context, filename string) ([]byte, error) {
	doc := s.Document()
	data, err := s.gw.Export(ctx, doc.ResumeContent, filename)
	if err != nil {
		s.failed("export", err)
		return nil, err
	}
	return data, nil
}

func (s *Session) clear() {
	s.doc = domain.Resume{}
	s.messages = nil
	s.step = 0
	s.view = ViewListing
	s.generation++
	s.revision++
}

// failed resets the session when the gateway rejected the credentials.
func (s *Session) failed(op string, err error) {
	s.log.Warn("builder "+op+" failed", zap.Error(err))
	if errors.Is(err, domain.ErrUnauthorized) {
		s.mu.Lock()
		s.clear()
		s.mu.Unlock()
	}
}

// Notice is the text to show the user for a failed action. Validation and
// authorization problems are shown as they are; anything else asks the
// user to retry.
func Notice(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return "Your session has expired, please sign in again."
	case errors.Is(err, domain.ErrNotFound):
		return "This resume no longer exists."
	}
	return "Something went wrong, please try again."
}
