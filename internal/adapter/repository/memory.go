package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps users and résumés in process memory. It backs tests and
// STORE_DRIVER=memory for local development.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]domain.Resume
	users   map[uuid.UUID]domain.User
	err     error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes: map[uuid.UUID]domain.Resume{},
		users:   map[uuid.UUID]domain.User{},
	}
}

// WithError makes every subsequent call fail with err.
func (m *MemoryStore) WithError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MemoryStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *MemoryStore) Insert(_ context.Context, r domain.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r.ResumeContent = r.ResumeContent.Clone()
	m.resumes[r.ID] = r
	return nil
}

func (m *MemoryStore) Get(_ context.Context, owner, id uuid.UUID) (domain.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return domain.Resume{}, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.UserID != owner {
		return domain.Resume{}, domain.ErrNotFound
	}
	r.ResumeContent = r.ResumeContent.Clone()
	return r, nil
}

func (m *MemoryStore) List(_ context.Context, owner uuid.UUID) ([]domain.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Resume{}
	for _, r := range m.resumes {
		if r.UserID == owner {
			r.ResumeContent = r.ResumeContent.Clone()
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, owner, id uuid.UUID, patch domain.ResumePatch, at time.Time) (domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Resume{}, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.UserID != owner {
		return domain.Resume{}, domain.ErrNotFound
	}
	patch.Apply(&r.ResumeContent)
	r.UpdatedAt = at
	m.resumes[id] = r
	r.ResumeContent = r.ResumeContent.Clone()
	return r, nil
}

func (m *MemoryStore) Delete(_ context.Context, owner, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.UserID != owner {
		return domain.ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

// Users returns the same store viewed as a user repository.
func (m *MemoryStore) Users() *MemoryUsers { return &MemoryUsers{m: m} }

type MemoryUsers struct{ m *MemoryStore }

func (u *MemoryUsers) Create(_ context.Context, user domain.User) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if u.m.err != nil {
		return u.m.err
	}
	user.Email = strings.ToLower(user.Email)
	for _, existing := range u.m.users {
		if existing.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	u.m.users[user.ID] = user
	return nil
}

func (u *MemoryUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u.m.mu.RLock()
	defer u.m.mu.RUnlock()
	if u.m.err != nil {
		return domain.User{}, u.m.err
	}
	email = strings.ToLower(email)
	for _, user := range u.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (u *MemoryUsers) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u.m.mu.RLock()
	defer u.m.mu.RUnlock()
	if u.m.err != nil {
		return domain.User{}, u.m.err
	}
	user, ok := u.m.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}
