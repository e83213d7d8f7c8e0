// Package application implements email/password authentication with bearer
// tokens.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/voxplan/voxplan/internal/identity/domain"
)

// Session is an authenticated user plus a signed bearer token.
type Session struct {
	Token string
	User  domain.User
}

// Service registers, authenticates, and verifies users.
type Service struct {
	repo     domain.Repository
	secret   []byte
	tokenTTL time.Duration
}

// NewService builds an auth service signing tokens with the given secret.
func NewService(repo domain.Repository, secret []byte, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &Service{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a fresh session. A duplicate
// email fails with domain.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(email, string(hash), time.Now())
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.newSession(user)
}

// Login authenticates an account. Bad email and bad password both fail with
// domain.ErrInvalidCredentials; no further detail is leaked.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.newSession(*user)
}

// FindUser returns the account behind a verified token subject.
func (s *Service) FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Verify parses and validates a bearer token, returning the user ID.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	return userID, nil
}

func (s *Service) newSession(user domain.User) (*Session, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{Token: signed, User: user}, nil
}
