package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/cryptox"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
)

// DefaultResetTokenTTL applies when IssueToken is called without a positive ttl.
const DefaultResetTokenTTL = common.DefaultResetTokenTTLSeconds * time.Second

// ResetTokenService issues, checks and consumes password-reset tokens. A
// user holds at most one token; issuing a new one replaces the old.
type ResetTokenService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewResetTokenService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ResetTokenService {
	return &ResetTokenService{db: db, repomanager: m, log: log, now: time.Now}
}

// WithClock replaces the time source.
func (s *ResetTokenService) WithClock(now func() time.Time) *ResetTokenService {
	s.now = now
	return s
}

// IssueToken generates a token for email valid for ttl, overwriting any
// previous token. Unknown emails yield common.ErrorNotFound.
func (s *ResetTokenService) IssueToken(ctx context.Context, email string, ttl time.Duration) (string, error) {
	email = common.NormalizeEmail(email)
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}

	token, err := cryptox.NewResetToken()
	if err != nil {
		s.log.Error(ctx, "error generating reset token", "error", err)
		return "", common.ErrorInternal
	}
	expiry := s.now().Add(ttl).Unix()

	ok, err := s.repomanager.ResetTokens(s.db).Set(ctx, email, token, expiry)
	if err != nil {
		s.log.Error(ctx, "error storing reset token", "email", email, "error", err)
		return "", common.ErrorStorage
	}
	if !ok {
		return "", common.ErrorNotFound
	}
	return token, nil
}

// ValidateToken reports whether token is the current, unexpired token of
// email. The token stays valid through its expiry second. It has no side
// effects.
func (s *ResetTokenService) ValidateToken(ctx context.Context, email, token string) (bool, error) {
	email = common.NormalizeEmail(email)

	rec, err := s.repomanager.ResetTokens(s.db).Find(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		s.log.Error(ctx, "error loading reset token", "email", email, "error", err)
		return false, common.ErrorStorage
	}

	if token == "" || rec.Token == "" || rec.Token != token || rec.Expiry == nil {
		return false, nil
	}
	return s.now().Unix() <= *rec.Expiry, nil
}

// ResetPassword replaces the password of email when token is valid and
// clears the token. A token can be consumed only once.
func (s *ResetTokenService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if newPassword == "" {
		return common.ErrorValidation
	}
	email = common.NormalizeEmail(email)

	valid, err := s.ValidateToken(ctx, email, token)
	if err != nil {
		return err
	}
	if !valid {
		return common.ErrInvalidToken
	}

	salt, digest, err := cryptox.HashPassword(newPassword)
	if err != nil {
		s.log.Error(ctx, "error hashing password", "error", err)
		return common.ErrorInternal
	}

	// the conditional update re-checks token and expiry, so a token consumed
	// by a concurrent request since validation is rejected here
	ok, err := s.repomanager.ResetTokens(s.db).Consume(ctx, email, token, s.now().Unix(), digest, salt)
	if err != nil {
		s.log.Error(ctx, "error resetting password", "email", email, "error", err)
		return common.ErrorStorage
	}
	if !ok {
		return common.ErrInvalidToken
	}

	s.log.Info(ctx, "password reset", "email", email)
	return nil
}
