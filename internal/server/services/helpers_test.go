package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/dbx"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/models"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/users"
)

var errDB = errors.New("db down")

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fakes ---

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
	existsErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byEmail[u.Email] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeResetRepo struct {
	setErr, findErr, consumeErr error
}

func (f *fakeResetRepo) Set(context.Context, string, string, int64) (bool, error) {
	return false, f.setErr
}

func (f *fakeResetRepo) Find(context.Context, string) (*models.ResetToken, error) {
	return nil, f.findErr
}

func (f *fakeResetRepo) Consume(context.Context, string, string, int64, string, string) (bool, error) {
	return false, f.consumeErr
}

type fakeProfilesRepo struct {
	rows      map[int64]models.ProfileFields
	reads     atomic.Int64
	upsertErr error
	getErr    error
	existsErr error
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{rows: map[int64]models.ProfileFields{}}
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[p.UserID] = p.ProfileFields
	return nil
}

func (f *fakeProfilesRepo) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	f.reads.Add(1)
	if f.getErr != nil {
		return nil, f.getErr
	}
	fields, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Profile{UserID: userID, ProfileFields: fields}, nil
}

func (f *fakeProfilesRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.rows[userID]
	return ok, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeResetRepo
	p *fakeProfilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) ResetTokens(db dbx.DBTX) resettokens.Repository { return m.r }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository       { return m.p }

var birthProfile = models.ProfileFields{
	DateOfBirth:   "1990-01-01",
	TimeOfBirth:   "10:00",
	PlaceOfBirth:  "Pune",
	FavoriteColor: "Blue",
	Rashi:         "Leo",
	Language:      "English",
	Gender:        "Male",
}
