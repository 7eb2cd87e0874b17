package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// SetFlash stores a one-shot message to show the user on their next page
// load. A later flash overwrites an unread one.
func (s Store) SetFlash(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE sessions SET flash = $1 WHERE id = $2", message, id)
	if err != nil {
		return errors.Wrap(err, "store: failed to set flash")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TakeFlash returns the pending flash message, clearing it so it is shown
// only once. Returns an empty string when there is nothing pending.
func (s Store) TakeFlash(ctx context.Context, id uuid.UUID) (string, error) {
	row := s.pool.QueryRow(
		ctx,
		"UPDATE sessions SET flash = NULL WHERE id = $1 AND flash IS NOT NULL RETURNING flash",
		id,
	)

	var flash string
	err := row.Scan(&flash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", errors.Wrap(err, "store: failed to take flash")
	}
	return flash, nil
}
