package testutil

import (
	"context"
	"sync"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
)

// Transfer is a refund recorded by Host.
type Transfer struct {
	Receiver account.ID
	Amount   balance.U128
}

// Host is an in-memory refund.Host. Tests move Usage directly (or through
// Grow and Shrink inside the wrapped operation) and inspect Transfers.
//
// Thread-safety: all methods are safe for concurrent use.
type Host struct {
	mu        sync.Mutex
	usage     uint64
	byteCost  balance.U128
	attached  balance.U128
	caller    account.ID
	transfers []Transfer

	// TransferErr, if set, is returned by Transfer.
	TransferErr error
}

// NewHost creates a host with the given caller, price per byte, attached
// deposit and initial storage usage.
func NewHost(caller account.ID, byteCost, attached balance.U128, usage uint64) *Host {
	return &Host{caller: caller, byteCost: byteCost, attached: attached, usage: usage}
}

// Grow adds n bytes of storage.
func (h *Host) Grow(n uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.usage += n
}

// Shrink frees n bytes of storage.
func (h *Host) Shrink(n uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.usage -= n
}

// StorageUsage implements refund.Host.
func (h *Host) StorageUsage(context.Context) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.usage, nil
}

// StorageByteCost implements refund.Host.
func (h *Host) StorageByteCost() balance.U128 {
	return h.byteCost
}

// AttachedDeposit implements refund.Host.
func (h *Host) AttachedDeposit() balance.U128 {
	return h.attached
}

// Predecessor implements refund.Host.
func (h *Host) Predecessor() account.ID {
	return h.caller
}

// Transfer implements refund.Host.
func (h *Host) Transfer(_ context.Context, receiver account.ID, amount balance.U128) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.TransferErr != nil {
		return h.TransferErr
	}
	h.transfers = append(h.transfers, Transfer{Receiver: receiver, Amount: amount})
	return nil
}

// Transfers returns a copy of the recorded transfers.
func (h *Host) Transfers() []Transfer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Transfer(nil), h.transfers...)
}
