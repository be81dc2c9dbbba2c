package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	ImageURL     *string   `bson:"image,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	Provider     string    `bson:"provider,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d userDoc) toDomain() (domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		ImageURL:     d.ImageURL,
		PasswordHash: d.PasswordHash,
		Provider:     d.Provider,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}

type MongoUsers struct {
	c *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{c: db.Collection("users")}
}

func (s *MongoUsers) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_users_email").SetUnique(true),
	})
	return err
}

func (s *MongoUsers) Create(ctx context.Context, u domain.User) error {
	_, err := s.c.InsertOne(ctx, userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        strings.ToLower(u.Email),
		ImageURL:     u.ImageURL,
		PasswordHash: u.PasswordHash,
		Provider:     u.Provider,
		CreatedAt:    u.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserAlreadyExists
	}
	return err
}

func (s *MongoUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *MongoUsers) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoUsers) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var d userDoc
	if err := s.c.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return d.toDomain()
}
