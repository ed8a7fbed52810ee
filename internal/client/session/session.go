// Package session holds the client's login state: the credential token and
// the session identifiers kept in local storage.
//
// A Session is created once and passed to the code that issues requests or
// changes login state, instead of being looked up globally.
package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/mindmate-client/internal/client/storage"
	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/dmitrijs2005/mindmate-client/internal/dbx"
	"github.com/dmitrijs2005/mindmate-client/internal/logging"
)

// Identity is the display information stored next to the token.
type Identity struct {
	UserID   string
	Username string
}

// Session reads and writes login state in local storage.
// It is safe for concurrent use.
type Session struct {
	db     *sql.DB
	logger logging.Logger
}

func New(db *sql.DB, logger logging.Logger) *Session {
	return &Session{db: db, logger: logger.With("module", "session")}
}

func (s *Session) repo() storage.Repository {
	return storage.NewSQLiteRepository(s.db)
}

// Token returns the stored credential token. ok is false when no token is
// stored or it is empty. A storage failure is logged and reported as absent.
func (s *Session) Token(ctx context.Context) (token string, ok bool) {
	token, err := s.repo().Get(ctx, common.StorageKeyAuthToken)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "reading auth token failed", "error", err)
		}
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

// Identity returns the stored session identifiers. Missing keys yield empty fields.
func (s *Session) Identity(ctx context.Context) (Identity, error) {
	var id Identity
	r := s.repo()

	userID, err := r.Get(ctx, common.StorageKeyUserID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return Identity{}, err
	}
	id.UserID = userID

	username, err := r.Get(ctx, common.StorageKeyUsername)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return Identity{}, err
	}
	id.Username = username

	return id, nil
}

// Save stores a freshly issued token together with its identifiers.
func (s *Session) Save(ctx context.Context, token string, id Identity) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := storage.NewSQLiteRepository(tx)
		if err := r.Set(ctx, common.StorageKeyAuthToken, token); err != nil {
			return err
		}
		if err := r.Set(ctx, common.StorageKeyUserID, id.UserID); err != nil {
			return err
		}
		return r.Set(ctx, common.StorageKeyUsername, id.Username)
	})
}

// Clear removes the token and the session identifiers. Other keys stay.
// Each key is deleted on its own, so one failing delete does not keep the
// others; the failures are joined.
func (s *Session) Clear(ctx context.Context) error {
	r := s.repo()

	var errs []error
	for _, key := range common.SessionStorageKeys {
		if err := r.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
