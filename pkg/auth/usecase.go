package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// UseCase описывает регистрацию и аутентификацию HR-пользователей.
type UseCase interface {
	Register(ctx context.Context, email, password, name string) (Result, error)
	Login(ctx context.Context, email, password string) (Result, error)
	Refresh(ctx context.Context, refreshToken string) (Result, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (User, error)
}

// Result — пара токенов и пользователь.
type Result struct {
	User         User
	AccessToken  string
	RefreshToken string
}

type service struct {
	repo   UserRepository
	tokens TokenGenerator
	store  TokenStore
}

func NewService(repo UserRepository, tokens TokenGenerator, store TokenStore) UseCase {
	return &service{repo: repo, tokens: tokens, store: store}
}

// Register заводит пользователя вместе с новой организацией.
// Первый пользователь организации получает роль admin.
func (s *service) Register(ctx context.Context, email, password, name string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return Result{}, ErrInvalidCredentials
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Result{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, err
	}
	user := User{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Email:          email,
		Name:           strings.TrimSpace(name),
		PasswordHash:   string(passwordHash),
		Role:           RoleAdmin,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return Result{}, err
	}
	return s.issue(ctx, user)
}

func (s *service) Login(ctx context.Context, email, password string) (Result, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Result{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return Result{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Result{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return Result{}, err
	}
	return s.issue(ctx, user)
}

// Refresh ротирует refresh-токен: старый удаляется, выдаётся новая пара.
func (s *service) Refresh(ctx context.Context, refreshToken string) (Result, error) {
	userID, err := s.store.Get(ctx, refreshToken)
	if err != nil {
		return Result{}, ErrInvalidToken
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return Result{}, ErrInvalidToken
	}
	if err := s.store.Delete(ctx, refreshToken); err != nil {
		return Result{}, err
	}
	return s.issue(ctx, user)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	return s.store.Delete(ctx, refreshToken)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) issue(ctx context.Context, user User) (Result, error) {
	access, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return Result{}, err
	}
	refresh := uuid.NewString()
	if err := s.store.Save(ctx, refresh, user.ID, refreshTokenTTL); err != nil {
		return Result{}, err
	}
	return Result{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
