package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("store: session not found")

// Session ties a browser client to an authenticated Runkeeper user. It is
// written once, when the OAuth callback succeeds, and read on every
// subsequent request from the same client.
type Session struct {
	ID          uuid.UUID
	UserID      int
	AccessToken string
	Username    string
	Fullname    string
}

// DisplayName returns the user's full name, falling back to the username.
func (s Session) DisplayName() string {
	if s.Fullname != "" {
		return s.Fullname
	}
	return s.Username
}

func (s Store) CreateSession(ctx context.Context, session Session) error {
	_, err := s.pool.Exec(
		ctx,
		insertSessionQuery,
		session.ID,
		session.UserID,
		session.AccessToken,
		session.Username,
		session.Fullname,
	)
	if err != nil {
		return errors.Wrap(err, "store: failed to create session")
	}
	return nil
}

const insertSessionQuery = `
INSERT INTO sessions (
	id,
	user_id,
	access_token,
	username,
	fullname
) VALUES (
	$1,
	$2,
	$3,
	$4,
	$5
) ON CONFLICT (id) DO UPDATE
SET user_id = EXCLUDED.user_id,
	access_token = EXCLUDED.access_token,
	username = EXCLUDED.username,
	fullname = EXCLUDED.fullname`

func (s Store) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := s.pool.QueryRow(ctx, getSessionQuery, id)

	session := Session{}
	err := row.Scan(&session.ID, &session.UserID, &session.AccessToken, &session.Username, &session.Fullname)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "store: failed to get session")
	}
	return &session, nil
}

const getSessionQuery = `
SELECT id, user_id, access_token, username, fullname
FROM sessions
WHERE id = $1`

func (s Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "store: failed to delete session")
	}
	return nil
}
