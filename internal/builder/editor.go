package builder

import (
	"fmt"

	"resume-builder/internal/domain"

	"go.uber.org/zap"
)

// Editor holds a local copy of one object section. Every edit is pushed
// to onChange immediately.
type Editor[T any] struct {
	value      T
	generation uint64
	onChange   func(T)
}

func NewEditor[T any](value T, generation uint64, onChange func(T)) *Editor[T] {
	return &Editor[T]{value: value, generation: generation, onChange: onChange}
}

func (e *Editor[T]) Value() T { return e.value }

func (e *Editor[T]) Edit(fn func(*T)) {
	fn(&e.value)
	if e.onChange != nil {
		e.onChange(e.value)
	}
}

// Sync adopts value when it comes from a newer generation and reports
// whether it did. It never calls onChange.
func (e *Editor[T]) Sync(value T, generation uint64) bool {
	if generation == e.generation {
		return false
	}
	e.value, e.generation = value, generation
	return true
}

// ListEditor is Editor for list sections. Rows are identified by position
// only; removing one shifts the rest up.
type ListEditor[T any] struct {
	rows       []T
	generation uint64
	blank      func() T
	onChange   func([]T)
}

// NewListEditor uses blank for rows added with Add; nil means the zero value.
func NewListEditor[T any](rows []T, generation uint64, blank func() T, onChange func([]T)) *ListEditor[T] {
	return &ListEditor[T]{rows: append([]T{}, rows...), generation: generation, blank: blank, onChange: onChange}
}

func (e *ListEditor[T]) Rows() []T { return append([]T{}, e.rows...) }

func (e *ListEditor[T]) Len() int { return len(e.rows) }

func (e *ListEditor[T]) Add() {
	var row T
	if e.blank != nil {
		row = e.blank()
	}
	e.rows = append(e.rows, row)
	e.changed()
}

func (e *ListEditor[T]) Remove(i int) error {
	if i < 0 || i >= len(e.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(e.rows))
	}
	e.rows = append(e.rows[:i:i], e.rows[i+1:]...)
	e.changed()
	return nil
}

func (e *ListEditor[T]) Edit(i int, fn func(*T)) error {
	if i < 0 || i >= len(e.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(e.rows))
	}
	fn(&e.rows[i])
	e.changed()
	return nil
}

func (e *ListEditor[T]) Sync(rows []T, generation uint64) bool {
	if generation == e.generation {
		return false
	}
	e.rows, e.generation = append([]T{}, rows...), generation
	return true
}

func (e *ListEditor[T]) changed() {
	if e.onChange != nil {
		e.onChange(e.Rows())
	}
}

// New skill and language rows start at the lowest proficiency so they are
// valid as soon as they are named.
func BlankSkill() domain.Skill       { return domain.Skill{Proficiency: 1} }
func BlankLanguage() domain.Language { return domain.Language{Proficiency: 1} }

// pushTo returns an onChange that writes into one section of s. Failures
// are logged; the editor keeps its local copy either way.
func pushTo[V any](s *Session, key string) func(V) {
	return func(v V) {
		if err := s.UpdateSection(key, v); err != nil {
			s.log.Warn("update section", zap.String("section", key), zap.Error(err))
		}
	}
}

// Editors bound to the session's current document, one per section.

func ProfileEditor(s *Session) *Editor[domain.ProfileInfo] {
	return NewEditor(s.Document().ProfileInfo, s.Generation(), pushTo[domain.ProfileInfo](s, SectionProfileInfo))
}

func ContactEditor(s *Session) *Editor[domain.ContactInfo] {
	return NewEditor(s.Document().ContactInfo, s.Generation(), pushTo[domain.ContactInfo](s, SectionContactInfo))
}

func WorkExperienceEditor(s *Session) *ListEditor[domain.WorkExperience] {
	return NewListEditor(s.Document().WorkExperience, s.Generation(), nil, pushTo[[]domain.WorkExperience](s, SectionWorkExperience))
}

func EducationEditor(s *Session) *ListEditor[domain.Education] {
	return NewListEditor(s.Document().Education, s.Generation(), nil, pushTo[[]domain.Education](s, SectionEducation))
}

func SkillsEditor(s *Session) *ListEditor[domain.Skill] {
	return NewListEditor(s.Document().Skills, s.Generation(), BlankSkill, pushTo[[]domain.Skill](s, SectionSkills))
}

func ProjectsEditor(s *Session) *ListEditor[domain.Project] {
	return NewListEditor(s.Document().Projects, s.Generation(), nil, pushTo[[]domain.Project](s, SectionProjects))
}

func CertificationsEditor(s *Session) *ListEditor[domain.Certification] {
	return NewListEditor(s.Document().Certifications, s.Generation(), nil, pushTo[[]domain.Certification](s, SectionCertifications))
}

func LanguagesEditor(s *Session) *ListEditor[domain.Language] {
	return NewListEditor(s.Document().Languages, s.Generation(), BlankLanguage, pushTo[[]domain.Language](s, SectionLanguages))
}

func InterestsEditor(s *Session) *ListEditor[domain.Interest] {
	return NewListEditor(s.Document().Interests, s.Generation(), nil, pushTo[[]domain.Interest](s, SectionInterests))
}
