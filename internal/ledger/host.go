package ledger

import (
	"context"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/wire"
)

// txHost is the refund.Host of one call. Storage usage is read from the
// call's transaction, and refunds are written into it, so a rolled back
// call leaves neither state nor transfers behind.
type txHost struct {
	tx       *store.Tx
	clock    *transferClock
	call     Call
	callID   string
	byteCost balance.U128

	refund *store.Transfer
}

func (h *txHost) StorageUsage(ctx context.Context) (uint64, error) {
	return h.tx.StorageUsage(ctx)
}

func (h *txHost) StorageByteCost() balance.U128 {
	return h.byteCost
}

func (h *txHost) AttachedDeposit() balance.U128 {
	return h.call.Attached
}

func (h *txHost) Predecessor() account.ID {
	return h.call.Caller
}

func (h *txHost) Transfer(ctx context.Context, receiver account.ID, amount balance.U128) error {
	seq := h.clock.next()
	id, err := wire.TransferID(h.callID, string(receiver), amount.String(), seq)
	if err != nil {
		return fmt.Errorf("transfer id: %w", err)
	}

	t := store.Transfer{
		ID:       id,
		CallID:   h.callID,
		Receiver: receiver,
		Amount:   amount,
		Seq:      seq,
	}
	if err := h.tx.WriteTransfer(ctx, t); err != nil {
		return err
	}
	h.refund = &t
	return nil
}
