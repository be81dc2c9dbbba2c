package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongo connects to TEST_MONGO_URI and hands out a throwaway database.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("resume_builder_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongo_Stores(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()

	users := NewMongoUsers(db)
	resumes := NewMongoResumes(db)
	require.NoError(t, users.EnsureIndexes(ctx))
	require.NoError(t, resumes.EnsureIndexes(ctx))

	runUserRepoSuite(t, users)
	runResumeRepoSuite(t, resumes, users)
}

func TestSetDocument_OnlySuppliedFields(t *testing.T) {
	tpl := ""
	skills := []domain.Skill{{Name: "Go", Proficiency: 5}}
	set, err := setDocument(domain.ResumePatch{Template: &tpl, Skills: &skills})
	require.NoError(t, err)

	assert.Len(t, set, 2)
	assert.Equal(t, domain.DefaultTemplate, set["template"])
	assert.Contains(t, set, "skills")
	assert.NotContains(t, set, "title")
}
