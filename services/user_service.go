package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"hotel-booking/apperror"
	"hotel-booking/models"
	"hotel-booking/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserService registers the guests that bookings are made for.
type UserService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewUserService(store repository.Store, logger *logrus.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func (s *UserService) RegisterUser(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperror.ErrInvalidInput)
	}
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", apperror.ErrInvalidInput, email)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperror.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "guest",
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return &user, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrUserNotFound, username)
		}
		return nil, err
	}
	return user, nil
}
