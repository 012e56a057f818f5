// Package users implements the user directory and the registration, login
// and profile operations built on top of it.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
)

var (
	ErrMissingFields   = fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password longer than %d bytes", common.ErrValidation, auth.MaxPasswordBytes)
)

// TokenIssuer mints a bearer token for a user.
type TokenIssuer interface {
	Issue(userID int, email string) (string, error)
}

// UpdateInput carries the optional fields of a profile update. Nil and empty
// strings both mean "leave unchanged".
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens TokenIssuer
	logger logging.Logger
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens TokenIssuer, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "users"),
	}
}

// Register creates a user. The early email check saves a hash computation
// for the common duplicate case; Create re-checks atomically.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: lookup email: %v", common.ErrInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrInternal, err)
	}

	user, err := s.repo.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrInternal, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the password and returns a fresh token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: lookup email: %v", common.ErrInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug(ctx, "password mismatch", "user_id", user.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %v", common.ErrInternal, err)
	}

	return token, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", common.ErrInternal, err)
	}
	return list, nil
}

// Update changes the fields present in in. Errors are reported in the order
// not found, email conflict, invalid password; nothing is written unless
// every check passes.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (*User, error) {
	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, s.repoErr(err, "get user")
	}

	patch := Patch{
		Name:  nonEmpty(in.Name),
		Email: nonEmpty(in.Email),
	}

	if patch.Email != nil && *patch.Email != current.Email {
		other, err := s.repo.GetUserByEmail(ctx, *patch.Email)
		if err == nil && other.ID != id {
			return nil, common.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: lookup email: %v", common.ErrInternal, err)
		}
	}

	if password := nonEmpty(in.Password); password != nil {
		if len(*password) > auth.MaxPasswordBytes {
			return nil, ErrPasswordTooLong
		}
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %v", common.ErrInternal, err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.repoErr(err, "update user")
	}

	s.logger.Info(ctx, "user updated", "user_id", id)
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repoErr(err, "delete user")
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// repoErr passes domain errors through and marks everything else internal.
func (s *Service) repoErr(err error, op string) error {
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrEmailTaken) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", common.ErrInternal, op, err)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
