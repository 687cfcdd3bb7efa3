package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/store"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username       string
	Password       string
	Email          string
	DisplayName    string
	ProfilePicture *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	store store.Store
}

func NewUserService(st store.Store) UserService {
	return &userService{store: st}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.Username == "" {
		return nil, validationError("username is required")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, validationError("a valid email is required")
	}
	if input.DisplayName == "" {
		return nil, validationError("display name is required")
	}
	if len(input.Password) < 8 {
		return nil, validationError("password must be at least 8 characters")
	}

	// Uniqueness is case-insensitive: "Grace" and "grace" are the same user.
	if s.store.UserByUsername(input.Username) != nil {
		return nil, ErrUsernameTaken
	}
	if s.store.UserByEmail(input.Email) != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := s.store.CreateUser(domain.User{
		Username:       input.Username,
		PasswordHash:   string(hash),
		DisplayName:    input.DisplayName,
		Email:          input.Email,
		ProfilePicture: input.ProfilePicture,
	})

	return sanitizeUser(&user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user := s.store.UserByUsername(username)
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := s.store.UserByID(id)
	if user == nil {
		return nil, ErrNotFound
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
