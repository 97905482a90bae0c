// Package services contains server-side business logic: account creation and
// credential checks, the password-reset token lifecycle and the birth-profile
// store with its session read-through.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/cryptox"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
)

// UserService registers accounts and verifies passwords.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, log: log}
}

// CreateUser stores a new account with a freshly salted password digest.
// A duplicate email yields common.ErrorConflict.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	salt, digest, err := cryptox.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "error hashing password", "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: digest,
		Salt:         salt,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		s.log.Error(ctx, "error creating user", "email", email, "error", err)
		return nil, common.ErrorStorage
	}
	return u, nil
}

// VerifyUser checks the password of email and returns the user id.
func (s *UserService) VerifyUser(ctx context.Context, email, password string) (int64, error) {
	email = common.NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		s.log.Error(ctx, "error loading user", "email", email, "error", err)
		return 0, common.ErrorStorage
	}

	if !cryptox.CheckPassword(password, u.Salt, u.PasswordHash) {
		return 0, common.ErrorInvalidCredentials
	}
	return u.ID, nil
}

// UserExists reports whether an account is registered for email.
func (s *UserService) UserExists(ctx context.Context, email string) (bool, error) {
	email = common.NormalizeEmail(email)

	ok, err := s.repomanager.Users(s.db).Exists(ctx, email)
	if err != nil {
		s.log.Error(ctx, "error checking user", "email", email, "error", err)
		return false, common.ErrorStorage
	}
	return ok, nil
}
