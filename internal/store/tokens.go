package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
)

// TokenRecord is a persisted token.
type TokenRecord struct {
	ID token.ID

	// Group is empty for manually created tokens.
	Group token.GroupName

	Token    token.Token
	Metadata token.Metadata
}

// JSON returns the view shape of the record.
func (r TokenRecord) JSON() token.JSONToken {
	return r.Token.ToJSON(r.ID, r.Metadata)
}

// InsertToken stores a newly minted token. An existing id fails with
// ALREADY_EXISTS.
func (c conn) InsertToken(ctx context.Context, rec TokenRecord) error {
	record, err := encodeJSON("token", rec.Token)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	md, err := encodeJSON("metadata", rec.Metadata)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}

	var group sql.NullString
	if rec.Group != "" {
		group = sql.NullString{String: string(rec.Group), Valid: true}
	}

	res, err := c.q.ExecContext(ctx, `
		INSERT INTO tokens (id, group_name, owner_id, record, metadata)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, string(rec.ID), group, string(rec.Token.OwnerID), record, md)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert token: rows affected: %w", err)
	}
	if n == 0 {
		return fault.New(fault.AlreadyExists, "token %s already exists", rec.ID).
			With("token", string(rec.ID))
	}
	return nil
}

// Token returns the token with the given id, or NOT_FOUND.
func (c conn) Token(ctx context.Context, id token.ID) (TokenRecord, error) {
	row := c.q.QueryRowContext(ctx, `
		SELECT id, group_name, record, metadata
		FROM tokens
		WHERE id = ?
	`, string(id))

	rec, err := scanToken(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TokenRecord{}, notFound("token", string(id))
	}
	if err != nil {
		return TokenRecord{}, err
	}
	return rec, nil
}

// TokensByOwner returns the tokens owned by owner, ordered by id.
//
// Returns an empty slice (not nil) if the account owns nothing.
func (c conn) TokensByOwner(ctx context.Context, owner account.ID) ([]TokenRecord, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT id, group_name, record, metadata
		FROM tokens
		WHERE owner_id = ?
		ORDER BY id COLLATE BINARY ASC
	`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	recs := []TokenRecord{}
	for rows.Next() {
		rec, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}
	return recs, nil
}

// CountGroupTokens returns how many tokens were minted from group.
func (c conn) CountGroupTokens(ctx context.Context, group token.GroupName) (int, error) {
	var n int
	err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE group_name = ?`, string(group)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanToken(s scanner) (TokenRecord, error) {
	var (
		id       string
		group    sql.NullString
		record   string
		metadata string
	)
	if err := s.Scan(&id, &group, &record, &metadata); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenRecord{}, err
		}
		return TokenRecord{}, fmt.Errorf("scan token: %w", err)
	}

	rec := TokenRecord{ID: token.ID(id), Group: token.GroupName(group.String)}
	if err := decodeJSON("token", record, &rec.Token); err != nil {
		return TokenRecord{}, fmt.Errorf("read token %s: %w", id, err)
	}
	if err := decodeJSON("metadata", metadata, &rec.Metadata); err != nil {
		return TokenRecord{}, fmt.Errorf("read token %s: %w", id, err)
	}
	return rec, nil
}

// UpdateToken replaces the owner record and metadata of an existing token.
func (c conn) UpdateToken(ctx context.Context, rec TokenRecord) error {
	record, err := encodeJSON("token", rec.Token)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	md, err := encodeJSON("metadata", rec.Metadata)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}

	res, err := c.q.ExecContext(ctx, `
		UPDATE tokens SET owner_id = ?, record = ?, metadata = ?
		WHERE id = ?
	`, string(rec.Token.OwnerID), record, md, string(rec.ID))
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	return requireRow(res, "token", string(rec.ID))
}
