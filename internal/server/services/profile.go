package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

// ProfileService stores birth profiles, one per user.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, log: log}
}

// SaveProfile creates or overwrites the profile of userID.
func (s *ProfileService) SaveProfile(ctx context.Context, userID int64, fields models.ProfileFields) error {
	return s.SaveProfileTx(ctx, s.db, userID, fields)
}

// SaveProfileTx is SaveProfile within the caller's transaction.
func (s *ProfileService) SaveProfileTx(ctx context.Context, db dbx.DBTX, userID int64, fields models.ProfileFields) error {
	p := &models.Profile{UserID: userID, ProfileFields: fields}
	if err := s.repomanager.Profiles(db).Upsert(ctx, p); err != nil {
		s.log.Error(ctx, "error saving profile", "user_id", userID, "error", err)
		return common.ErrorStorage
	}
	return nil
}

// GetProfile reads the profile straight from the store.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.GetProfileTx(ctx, s.db, userID)
}

// GetProfileTx is GetProfile within the caller's transaction.
func (s *ProfileService) GetProfileTx(ctx context.Context, db dbx.DBTX, userID int64) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "error loading profile", "user_id", userID, "error", err)
		return nil, common.ErrorStorage
	}
	return p, nil
}

// IsProfileComplete reports whether userID has saved a profile. Field
// contents are not inspected.
func (s *ProfileService) IsProfileComplete(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.repomanager.Profiles(s.db).Exists(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "error checking profile", "user_id", userID, "error", err)
		return false, common.ErrorStorage
	}
	return ok, nil
}

// GetProfileSmart reads through the session cache. A store hit fills the
// cache; a miss returns common.ErrorNotFound and leaves the cache untouched.
// A nil session always reads the store.
func (s *ProfileService) GetProfileSmart(ctx context.Context, sess *session.Session, userID int64) (*models.Profile, error) {
	if sess != nil {
		if fields, ok := sess.CachedProfile(userID); ok {
			s.log.Debug(ctx, "profile cache hit", "user_id", userID, "session_id", sess.ID())
			return &models.Profile{UserID: userID, ProfileFields: fields}, nil
		}
	}

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		sess.SetCachedProfile(userID, p.ProfileFields)
	}
	return p, nil
}
