package ledger

import (
	"context"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
)

// AddOwner adds id to the owner set. Adding an existing owner fails with
// ALREADY_EXISTS. While the set is empty anyone may add the first owner.
func (l *Ledger) AddOwner(ctx context.Context, call Call, id account.ID) (Receipt, error) {
	_, receipt, err := mutate(ctx, l, call, "add_owner", func(ctx context.Context, tx *store.Tx) (struct{}, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return struct{}{}, err
		}
		added, err := tx.AddOwner(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		if !added {
			return struct{}{}, fault.New(fault.AlreadyExists, "%s is already an owner", id).
				With("owner", string(id))
		}
		l.logger.Info("owner added", "owner", id)
		return struct{}{}, nil
	})
	return receipt, err
}

// RemoveOwner removes id from the owner set. The freed bytes are credited
// back to the caller.
func (l *Ledger) RemoveOwner(ctx context.Context, call Call, id account.ID) (Receipt, error) {
	_, receipt, err := mutate(ctx, l, call, "remove_owner", func(ctx context.Context, tx *store.Tx) (struct{}, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return struct{}{}, err
		}
		removed, err := tx.RemoveOwner(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		if !removed {
			return struct{}{}, fault.New(fault.NotFound, "%s is not an owner", id).
				With("owner", string(id))
		}
		l.logger.Info("owner removed", "owner", id)
		return struct{}{}, nil
	})
	return receipt, err
}

// IsOwner reports whether id is in the owner set.
func (l *Ledger) IsOwner(ctx context.Context, id account.ID) (bool, error) {
	return l.store.IsOwner(ctx, id)
}

// Owners lists owners in the order they were added, skipping from entries
// and returning at most limit (0 means all).
func (l *Ledger) Owners(ctx context.Context, from, limit int) ([]account.ID, error) {
	return l.store.Owners(ctx, from, limit)
}
