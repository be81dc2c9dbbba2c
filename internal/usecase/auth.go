package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService registers and signs in local accounts.
type AuthService struct {
	users  UserRepository
	tokens TokenGenerator
	log    *zap.Logger
}

func NewAuthService(users UserRepository, tokens TokenGenerator, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: logging.OrNop(log)}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = plainText(name)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return AuthResult{}, invalidField("email", "must be a valid email address")
	}
	if len(password) < minPasswordLen {
		return AuthResult{}, invalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}

	// best-effort; the unique index is the real guard
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, domain.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if user.PasswordHash == "" {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) issue(ctx context.Context, user domain.User) (AuthResult, error) {
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate token: %w", err)
	}
	return AuthResult{User: user, Token: token}, nil
}

func invalidField(field, msg string) error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Message: msg}}}
}
