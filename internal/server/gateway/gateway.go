// Package gateway is the façade presentation code calls into. It combines
// the credential, reset token and profile services with the session
// registry and the reset token notifier.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
	"github.com/dmitrijs2005/astrochat/internal/server/notify"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/astrochat/internal/server/services"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

// Options tunes session and reset token lifetimes.
type Options struct {
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

type Gateway struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	users       *services.UserService
	tokens      *services.ResetTokenService
	profiles    *services.ProfileService
	sessions    *session.Registry
	notifier    notify.Notifier
	log         logging.Logger
	opts        Options
}

// New wires a Gateway. A nil notifier logs instead of delivering tokens.
func New(db *sql.DB, m repomanager.RepositoryManager, sessions *session.Registry, n notify.Notifier, log logging.Logger, opts Options) *Gateway {
	if n == nil {
		n = notify.NewLogNotifier(log)
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = services.DefaultResetTokenTTL
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Gateway{
		db:          db,
		repomanager: m,
		users:       services.NewUserService(db, m, log),
		tokens:      services.NewResetTokenService(db, m, log),
		profiles:    services.NewProfileService(db, m, log),
		sessions:    sessions,
		notifier:    n,
		log:         log,
		opts:        opts,
	}
}

// WithClock replaces the time source of the reset token service.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.tokens.WithClock(now)
	return g
}

// InitializeSchema creates the tables when missing. Safe to repeat.
func (g *Gateway) InitializeSchema(ctx context.Context) error {
	if err := g.repomanager.RunMigrations(ctx, g.db); err != nil {
		g.log.Error(ctx, "error migrating schema", "error", err)
		return common.ErrorStorage
	}
	return nil
}

// --- credentials ---

func (g *Gateway) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	return g.users.CreateUser(ctx, username, email, password)
}

func (g *Gateway) VerifyUser(ctx context.Context, email, password string) (int64, error) {
	return g.users.VerifyUser(ctx, email, password)
}

func (g *Gateway) UserExists(ctx context.Context, email string) (bool, error) {
	return g.users.UserExists(ctx, email)
}

// Login verifies the password and opens a session for the user.
func (g *Gateway) Login(ctx context.Context, email, password string) (*session.Session, error) {
	userID, err := g.users.VerifyUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s := g.sessions.Open(userID, common.NormalizeEmail(email), g.opts.SessionTTL)
	g.log.Info(ctx, "user logged in", "user_id", userID)
	return s, nil
}

// Logout closes the session and drops its cached profile.
func (g *Gateway) Logout(sessionID string) {
	g.sessions.Close(sessionID)
}

// Session returns the live session with id or common.ErrSessionNotFound.
func (g *Gateway) Session(id string) (*session.Session, error) {
	return g.sessions.Get(id)
}

// --- reset tokens ---

func (g *Gateway) IssueResetToken(ctx context.Context, email string, ttl time.Duration) (string, error) {
	return g.tokens.IssueToken(ctx, email, ttl)
}

func (g *Gateway) ValidateResetToken(ctx context.Context, email, token string) (bool, error) {
	return g.tokens.ValidateToken(ctx, email, token)
}

func (g *Gateway) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	return g.tokens.ResetPassword(ctx, email, token, newPassword)
}

// RequestPasswordReset issues a token and hands it to the notifier. An
// unknown email returns an empty token and no error so callers can answer
// both cases alike. Delivery failures are logged only.
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = common.NormalizeEmail(email)

	token, err := g.tokens.IssueToken(ctx, email, g.opts.ResetTokenTTL)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			g.log.Info(ctx, "password reset requested for unknown email", "email", email)
			return "", nil
		}
		return "", err
	}

	if err := g.notifier.SendResetToken(ctx, email, token, g.opts.ResetTokenTTL); err != nil {
		g.log.Error(ctx, "error delivering reset token", "email", email, "error", err)
	}
	return token, nil
}

// --- profiles ---

func (g *Gateway) SaveProfile(ctx context.Context, userID int64, fields models.ProfileFields) error {
	return g.profiles.SaveProfile(ctx, userID, fields)
}

// GetProfile reads the store directly, bypassing any session cache.
func (g *Gateway) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return g.profiles.GetProfile(ctx, userID)
}

func (g *Gateway) IsProfileComplete(ctx context.Context, userID int64) (bool, error) {
	return g.profiles.IsProfileComplete(ctx, userID)
}

func (g *Gateway) GetProfileSmart(ctx context.Context, sess *session.Session, userID int64) (*models.Profile, error) {
	return g.profiles.GetProfileSmart(ctx, sess, userID)
}

// CacheProfile stores fields in the session cache tagged with userID.
func (g *Gateway) CacheProfile(sess *session.Session, userID int64, fields models.ProfileFields) {
	sess.SetCachedProfile(userID, fields)
}

// SaveAndCacheProfile writes the profile of the session user and refreshes
// the session cache with the stored row. A failed write empties the cache.
func (g *Gateway) SaveAndCacheProfile(ctx context.Context, sess *session.Session, fields models.ProfileFields) error {
	userID := sess.UserID()

	var stored *models.Profile
	err := dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := g.profiles.SaveProfileTx(ctx, tx, userID, fields); err != nil {
			return err
		}
		var err error
		stored, err = g.profiles.GetProfileTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		sess.InvalidateProfile()
		if common.KindOf(err) == common.KindInternal {
			g.log.Error(ctx, "error saving profile", "user_id", userID, "error", err)
			return common.ErrorStorage
		}
		return err
	}

	sess.SetCachedProfile(userID, stored.ProfileFields)
	return nil
}
