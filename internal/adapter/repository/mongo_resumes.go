package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type resumeDoc struct {
	ID                   string `bson:"_id"`
	UserID               string `bson:"user_id"`
	domain.ResumeContent `bson:",inline"`
	CreatedAt            time.Time `bson:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at"`
}

func toResumeDoc(r domain.Resume) resumeDoc {
	return resumeDoc{
		ID:            r.ID.String(),
		UserID:        r.UserID.String(),
		ResumeContent: r.ResumeContent.Clone(),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (d resumeDoc) toDomain() (domain.Resume, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("stored resume id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.UserID)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("stored resume owner %q: %w", d.UserID, err)
	}
	d.ResumeContent.Normalize()
	return domain.Resume{
		ID:            id,
		UserID:        owner,
		ResumeContent: d.ResumeContent,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}, nil
}

// MongoResumes stores one document per résumé in the "resumes" collection.
type MongoResumes struct {
	c *mongo.Collection
}

func NewMongoResumes(db *mongo.Database) *MongoResumes {
	return &MongoResumes{c: db.Collection("resumes")}
}

func (s *MongoResumes) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_resumes_user_updated"),
		},
	})
	return err
}

func (s *MongoResumes) Insert(ctx context.Context, r domain.Resume) error {
	_, err := s.c.InsertOne(ctx, toResumeDoc(r))
	return err
}

func ownerFilter(owner, id uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "user_id": owner.String()}
}

func (s *MongoResumes) Get(ctx context.Context, owner, id uuid.UUID) (domain.Resume, error) {
	var d resumeDoc
	if err := s.c.FindOne(ctx, ownerFilter(owner, id)).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Resume{}, domain.ErrNotFound
		}
		return domain.Resume{}, err
	}
	return d.toDomain()
}

func (s *MongoResumes) List(ctx context.Context, owner uuid.UUID) ([]domain.Resume, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": owner.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []resumeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Resume, 0, len(docs))
	for _, d := range docs {
		r, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Update is a single FindOneAndUpdate so concurrent partial updates to
// different sections never overwrite each other.
func (s *MongoResumes) Update(ctx context.Context, owner, id uuid.UUID, patch domain.ResumePatch, at time.Time) (domain.Resume, error) {
	set, err := setDocument(patch)
	if err != nil {
		return domain.Resume{}, err
	}
	set["updated_at"] = at

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d resumeDoc
	err = s.c.FindOneAndUpdate(ctx, ownerFilter(owner, id), bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Resume{}, domain.ErrNotFound
		}
		return domain.Resume{}, err
	}
	return d.toDomain()
}

func (s *MongoResumes) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.c.DeleteOne(ctx, ownerFilter(owner, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// patchKeys maps patch JSON names to stored field names.
var patchKeys = map[string]string{
	"title":          "title",
	"template":       "template",
	"colorPalette":   "color_palette",
	"profileInfo":    "profile_info",
	"contactInfo":    "contact_info",
	"workExperience": "work_experience",
	"education":      "education",
	"skills":         "skills",
	"projects":       "projects",
	"certifications": "certifications",
	"languages":      "languages",
	"interests":      "interests",
}

// setDocument builds the $set document for the supplied fields. The patch
// is applied to an empty document first so stored values get the same
// defaults as a full write.
func setDocument(patch domain.ResumePatch) (bson.M, error) {
	var scratch domain.ResumeContent
	patch.Apply(&scratch)

	raw, err := bson.Marshal(scratch)
	if err != nil {
		return nil, err
	}
	var all bson.M
	if err := bson.Unmarshal(raw, &all); err != nil {
		return nil, err
	}

	set := bson.M{}
	for _, f := range patch.Fields() {
		key := patchKeys[f]
		set[key] = all[key]
	}
	return set, nil
}
