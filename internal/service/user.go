// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take repository INTERFACES, not concrete sqlite types. Tests pass
// hand-written mocks; main.go passes the SQLite implementations. Neither the
// handlers nor the daily job ever touch SQL directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/model"
	"github.com/sakif/word-of-the-day/internal/repository"
)

// UserService handles subscriber registration.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Register validates and stores a new subscriber.
//
// DUPLICATE CHECK:
// We look the email up first and reject with a conflict error if it already
// exists, so the caller gets the friendly "Email already registered" message.
// The UNIQUE constraint on the email column remains the real guarantee — if
// two registrations race past the pre-check, the second insert still fails.
func (s *UserService) Register(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "email must be a valid address")
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperror.Conflict("Email already registered")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		s.logger.Error("failed to check existing email",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	user := &model.User{
		Name:  name,
		Email: email,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Don't log conflicts as errors — a racing duplicate is a normal
		// client-side condition, not a server fault.
		if !errors.Is(err, apperror.ErrConflict) {
			s.logger.Error("failed to create user",
				slog.String("email", email),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Count returns the total number of registered subscribers. Pure read.
func (s *UserService) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count users", slog.String("error", err.Error()))
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// ListEmails returns the email address of every registered subscriber.
// The daily job uses this to build its recipient list.
func (s *UserService) ListEmails(ctx context.Context) ([]string, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	return emails, nil
}
