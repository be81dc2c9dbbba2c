package repository

import (
	"context"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resumeRepo interface {
	Insert(ctx context.Context, r domain.Resume) error
	Get(ctx context.Context, owner, id uuid.UUID) (domain.Resume, error)
	List(ctx context.Context, owner uuid.UUID) ([]domain.Resume, error)
	Update(ctx context.Context, owner, id uuid.UUID, patch domain.ResumePatch, at time.Time) (domain.Resume, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type userRepo interface {
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func newUser(t *testing.T, users userRepo) uuid.UUID {
	t.Helper()
	u := domain.User{
		ID:           uuid.New(),
		Name:         "Test",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u.ID
}

func newResume(owner uuid.UUID, title string, at time.Time) domain.Resume {
	return domain.Resume{
		ID:            uuid.New(),
		UserID:        owner,
		ResumeContent: domain.NewResumeContent(title),
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

// runResumeRepoSuite checks behavior every store must share.
func runResumeRepoSuite(t *testing.T, repo resumeRepo, users userRepo) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("insert and get", func(t *testing.T) {
		owner := newUser(t, users)
		r := newResume(owner, "Backend", base)
		r.Skills = []domain.Skill{{Name: "Go", Proficiency: 4}}
		require.NoError(t, repo.Insert(ctx, r))

		got, err := repo.Get(ctx, owner, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Backend", got.Title)
		assert.Equal(t, domain.DefaultTemplate, got.Template)
		assert.Equal(t, r.Skills, got.Skills)
		assert.NotNil(t, got.Interests)
	})

	t.Run("other owner sees not found", func(t *testing.T) {
		owner := newUser(t, users)
		stranger := newUser(t, users)
		r := newResume(owner, "Mine", base)
		require.NoError(t, repo.Insert(ctx, r))

		_, err := repo.Get(ctx, stranger, r.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		title := "Stolen"
		_, err = repo.Update(ctx, stranger, r.ID, domain.ResumePatch{Title: &title}, base)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, stranger, r.ID), domain.ErrNotFound)

		got, err := repo.Get(ctx, owner, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mine", got.Title)
	})

	t.Run("list is newest first", func(t *testing.T) {
		owner := newUser(t, users)
		older := newResume(owner, "Older", base)
		newer := newResume(owner, "Newer", base.Add(time.Minute))
		require.NoError(t, repo.Insert(ctx, older))
		require.NoError(t, repo.Insert(ctx, newer))

		list, err := repo.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Newer", list[0].Title)
		assert.Equal(t, "Older", list[1].Title)

		empty, err := repo.List(ctx, newUser(t, users))
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("partial updates keep other sections", func(t *testing.T) {
		owner := newUser(t, users)
		r := newResume(owner, "Partial", base)
		require.NoError(t, repo.Insert(ctx, r))

		skills := []domain.Skill{{Name: "SQL", Proficiency: 3}}
		_, err := repo.Update(ctx, owner, r.ID, domain.ResumePatch{Skills: &skills}, base.Add(time.Second))
		require.NoError(t, err)

		profile := domain.ProfileInfo{FullName: "Jo"}
		got, err := repo.Update(ctx, owner, r.ID, domain.ResumePatch{ProfileInfo: &profile}, base.Add(2*time.Second))
		require.NoError(t, err)

		assert.Equal(t, skills, got.Skills)
		assert.Equal(t, "Jo", got.ProfileInfo.FullName)
		assert.Equal(t, "Partial", got.Title)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		owner := newUser(t, users)
		r := newResume(owner, "Gone", base)
		require.NoError(t, repo.Insert(ctx, r))

		require.NoError(t, repo.Delete(ctx, owner, r.ID))
		_, err := repo.Get(ctx, owner, r.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, owner, r.ID), domain.ErrNotFound)
	})
}

func runUserRepoSuite(t *testing.T, users userRepo) {
	ctx := context.Background()
	u := domain.User{ID: uuid.New(), Name: "Ann", Email: "Ann-" + uuid.NewString() + "@Example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Email, byID.Email)

	dup := u
	dup.ID = uuid.New()
	assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrUserAlreadyExists)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
