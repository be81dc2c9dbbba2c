package usecase

import (
	"context"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// ResumeRepository stores résumés. Every call is scoped to an owner; a
// résumé owned by somebody else is reported as domain.ErrNotFound.
type ResumeRepository interface {
	Insert(ctx context.Context, r domain.Resume) error
	Get(ctx context.Context, owner, id uuid.UUID) (domain.Resume, error)
	// List returns the owner's résumés, most recently updated first.
	List(ctx context.Context, owner uuid.UUID) ([]domain.Resume, error)
	// Update applies patch atomically and returns the stored result.
	Update(ctx context.Context, owner, id uuid.UUID, patch domain.ResumePatch, at time.Time) (domain.Resume, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type TokenGenerator interface {
	Generate(ctx context.Context, user domain.User) (string, error)
}

// PDFStrategy turns a standalone HTML page into PDF bytes.
type PDFStrategy interface {
	Name() string
	Print(ctx context.Context, html string) ([]byte, error)
}
