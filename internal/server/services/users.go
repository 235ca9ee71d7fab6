// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and
// issuing access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/avagulans/inkpost/internal/common"
	"github.com/avagulans/inkpost/internal/dbx"
	"github.com/avagulans/inkpost/internal/server/auth"
	"github.com/avagulans/inkpost/internal/server/models"
	"github.com/avagulans/inkpost/internal/server/repositories/repomanager"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

// UserService provides authentication-related operations:
// - Register: create users with hashed passwords
// - Login: verify credentials and mint an access token
// - GetByUsername: resolve a token subject back to a stored user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
}

// NewUserService constructs a UserService. db may be nil when the repository
// manager is backed by the in-memory store.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *UserService {
	return &UserService{db: db, repomanager: m, codec: codec}
}

// runInTx executes fn inside a database transaction when a database is
// present, and directly otherwise.
func (s *UserService) runInTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Register validates the signup fields, hashes the password, and creates the
// user. A username or email already in use yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 letters, digits or underscores", common.ErrorValidation)
	}
	if !strings.Contains(email, "@") || len(email) > 255 {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var created *models.User

	err = s.runInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return common.ErrorConflict
		} else if !errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInternal
		}
		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return common.ErrorConflict
		} else if !errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInternal
		}

		user := &models.User{Username: username, Email: email, PasswordHash: hash}
		var createErr error
		created, createErr = repo.Create(ctx, user)
		return createErr
	})

	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		if errors.Is(err, common.ErrorValidation) || errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the username and password and, on success, returns a signed
// access token. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.codec.Issue(map[string]any{"sub": user.Username})
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetByUsername returns the stored user for a username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
