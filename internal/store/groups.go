package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
)

// InsertGroup stores a new offer. A group with the same name fails with
// ALREADY_EXISTS.
func (c conn) InsertGroup(ctx context.Context, offer token.Offer) error {
	data, err := encodeJSON("offer", offer)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	res, err := c.q.ExecContext(ctx, `
		INSERT INTO groups (name, offer)
		VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, string(offer.GroupID), data)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert group: rows affected: %w", err)
	}
	if n == 0 {
		return fault.New(fault.AlreadyExists, "group %s already exists", offer.GroupID).
			With("group", string(offer.GroupID))
	}
	return nil
}

// UpdateGroup replaces the stored offer for offer.GroupID, keeping its
// position.
func (c conn) UpdateGroup(ctx context.Context, offer token.Offer) error {
	data, err := encodeJSON("offer", offer)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}

	res, err := c.q.ExecContext(ctx, `UPDATE groups SET offer = ? WHERE name = ?`, data, string(offer.GroupID))
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return requireRow(res, "group", string(offer.GroupID))
}

// DeleteGroup removes a group. Tokens already minted from it stay.
func (c conn) DeleteGroup(ctx context.Context, name token.GroupName) error {
	res, err := c.q.ExecContext(ctx, `DELETE FROM groups WHERE name = ?`, string(name))
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return requireRow(res, "group", string(name))
}

// Group returns the offer for name, or NOT_FOUND.
func (c conn) Group(ctx context.Context, name token.GroupName) (token.Offer, error) {
	var data string
	err := c.q.QueryRowContext(ctx, `SELECT offer FROM groups WHERE name = ?`, string(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return token.Offer{}, notFound("group", string(name))
	}
	if err != nil {
		return token.Offer{}, fmt.Errorf("read group: %w", err)
	}

	var offer token.Offer
	if err := decodeJSON("offer", data, &offer); err != nil {
		return token.Offer{}, fmt.Errorf("read group %s: %w", name, err)
	}
	return offer, nil
}

// GroupAt returns the i-th group in insertion order, counting from 0.
func (c conn) GroupAt(ctx context.Context, i int) (token.Offer, error) {
	if i < 0 {
		return token.Offer{}, fault.New(fault.OutOfRange, "group index %d is negative", i)
	}

	var data string
	err := c.q.QueryRowContext(ctx, `
		SELECT offer FROM groups
		ORDER BY id ASC
		LIMIT 1 OFFSET ?
	`, i).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return token.Offer{}, fault.New(fault.OutOfRange, "group index %d out of range", i)
	}
	if err != nil {
		return token.Offer{}, fmt.Errorf("read group at %d: %w", i, err)
	}

	var offer token.Offer
	if err := decodeJSON("offer", data, &offer); err != nil {
		return token.Offer{}, fmt.Errorf("read group at %d: %w", i, err)
	}
	return offer, nil
}

// GroupNames returns every group name in insertion order.
//
// Returns an empty slice (not nil) when there are no groups.
func (c conn) GroupNames(ctx context.Context) ([]token.GroupName, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT name FROM groups ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	names := []token.GroupName{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		names = append(names, token.GroupName(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return names, nil
}

func requireRow(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: rows affected: %w", kind, key, err)
	}
	if n == 0 {
		return notFound(kind, key)
	}
	return nil
}

func notFound(kind, key string) *fault.Error {
	return fault.New(fault.NotFound, "%s %s not found", kind, key).With(kind, key)
}
