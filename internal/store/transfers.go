package store

import (
	"context"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
)

// Transfer is a refund issued by the deposit reconciler.
type Transfer struct {
	ID       string       `json:"id"`
	CallID   string       `json:"call_id"`
	Receiver account.ID   `json:"receiver"`
	Amount   balance.U128 `json:"amount"`
	Seq      int64        `json:"seq"`
}

// WriteTransfer records a refund.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - ids are content-addressed,
// so writing the same transfer twice is silently ignored.
func (c conn) WriteTransfer(ctx context.Context, t Transfer) error {
	_, err := c.q.ExecContext(ctx, `
		INSERT INTO transfers (id, call_id, receiver, amount, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, t.ID, t.CallID, string(t.Receiver), t.Amount.String(), t.Seq)
	if err != nil {
		return fmt.Errorf("write transfer: %w", err)
	}
	return nil
}

// Transfers returns every recorded refund ordered by seq ASC, id ASC.
//
// Returns an empty slice (not nil) if none exist.
func (c conn) Transfers(ctx context.Context) ([]Transfer, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT id, call_id, receiver, amount, seq
		FROM transfers
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	transfers := []Transfer{}
	for rows.Next() {
		var (
			t        Transfer
			receiver string
			amount   string
		)
		if err := rows.Scan(&t.ID, &t.CallID, &receiver, &amount, &t.Seq); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.Receiver = account.ID(receiver)
		if t.Amount, err = balance.Parse(amount); err != nil {
			return nil, fmt.Errorf("transfer %s: %w", t.ID, err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return transfers, nil
}

// LastTransferSeq returns the highest recorded seq, or 0.
// Used to resume the ledger clock after reopening a database.
func (c conn) LastTransferSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := c.q.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM transfers`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last transfer seq: %w", err)
	}
	return seq, nil
}
