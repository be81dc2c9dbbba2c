package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Resumes(t *testing.T) {
	store := NewMemoryStore()
	runResumeRepoSuite(t, store, store.Users())
}

func TestMemoryStore_Users(t *testing.T) {
	runUserRepoSuite(t, NewMemoryStore().Users())
}

func TestMemoryStore_WithError(t *testing.T) {
	boom := errors.New("boom")
	store := NewMemoryStore().WithError(boom)

	_, err := store.List(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Ping(context.Background()), boom)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := uuid.New()
	r := newResume(owner, "Copy", time.Now().UTC())
	assert.NoError(t, store.Insert(ctx, r))

	got, _ := store.Get(ctx, owner, r.ID)
	got.ColorPalette[0] = "#000000"

	again, _ := store.Get(ctx, owner, r.ID)
	assert.NotEqual(t, "#000000", again.ColorPalette[0])
}
