package store

import (
	"context"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
)

// AddOwner adds id to the owner set. It reports whether id was new.
func (c conn) AddOwner(ctx context.Context, id account.ID) (bool, error) {
	res, err := c.q.ExecContext(ctx, `
		INSERT INTO owners (account_id) VALUES (?)
		ON CONFLICT(account_id) DO NOTHING
	`, string(id))
	if err != nil {
		return false, fmt.Errorf("add owner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add owner: rows affected: %w", err)
	}
	return n > 0, nil
}

// RemoveOwner removes id from the owner set. It reports whether id was
// present.
func (c conn) RemoveOwner(ctx context.Context, id account.ID) (bool, error) {
	res, err := c.q.ExecContext(ctx, `DELETE FROM owners WHERE account_id = ?`, string(id))
	if err != nil {
		return false, fmt.Errorf("remove owner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove owner: rows affected: %w", err)
	}
	return n > 0, nil
}

// IsOwner reports whether id is in the owner set.
func (c conn) IsOwner(ctx context.Context, id account.ID) (bool, error) {
	var count int
	err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM owners WHERE account_id = ?`, string(id)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check owner: %w", err)
	}
	return count > 0, nil
}

// Owners lists owners in insertion order, skipping the first from entries.
// A limit of 0 means no limit.
//
// Returns an empty slice (not nil) past the end of the set.
func (c conn) Owners(ctx context.Context, from, limit int) ([]account.ID, error) {
	if from < 0 {
		from = 0
	}
	lim := -1
	if limit > 0 {
		lim = limit
	}

	rows, err := c.q.QueryContext(ctx, `
		SELECT account_id FROM owners
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, lim, from)
	if err != nil {
		return nil, fmt.Errorf("query owners: %w", err)
	}
	defer rows.Close()

	ids := []account.ID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		ids = append(ids, account.ID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}
	return ids, nil
}
