package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"asd-screen/internal/domain"
	"asd-screen/internal/repository"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

// UserService coordina registro y verificacion de credenciales.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	limiter LoginLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, limiter LoginLimiter) *UserService {
	return &UserService{
		logger:  logger,
		users:   users,
		limiter: limiter,
	}
}

// Register crea una credencial nueva. Si el username ya existe devuelve
// ErrUsernameTaken y la credencial existente no se toca.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.String("username", username))
	}
	return user, nil
}

// Authenticate verifica usuario y contraseña.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.limiter != nil && !s.limiter.Allow(strings.ToLower(username)) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}
