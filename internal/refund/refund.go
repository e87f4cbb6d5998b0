// Package refund reconciles an attached storage deposit against the
// storage a mutating operation actually consumed or freed.
//
// Deposit wraps the operation: it measures storage before and after,
// charges growth (plus an optional deduction) against the attached
// deposit, credits freed bytes back, and transfers whatever remains to the
// receiver. A shortfall fails with INSUFFICIENT_DEPOSIT after the
// operation already ran; the caller must discard its effects (the ledger
// does this by rolling back the enclosing transaction).
package refund

import (
	"context"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// DustThreshold is the largest refund that is not worth a transfer.
var DustThreshold = balance.From64(1)

// Host is the execution environment the reconciler reads from and
// transfers through.
type Host interface {
	// StorageUsage returns the current persistent footprint in bytes.
	StorageUsage(ctx context.Context) (uint64, error)

	// StorageByteCost returns the price of one byte.
	StorageByteCost() balance.U128

	// AttachedDeposit returns the payment attached to the current call.
	AttachedDeposit() balance.U128

	// Predecessor returns the caller, the default refund receiver.
	Predecessor() account.ID

	// Transfer sends amount to receiver.
	Transfer(ctx context.Context, receiver account.ID, amount balance.U128) error
}

// Inputs are the scalars a settlement is computed from.
type Inputs struct {
	StorageBefore uint64
	StorageAfter  uint64
	ByteCost      balance.U128
	Attached      balance.U128
	Deduction     balance.U128
}

// Settlement is the outcome of a successful reconciliation.
type Settlement struct {
	// Charged is what the growth and deduction cost (growth branch), or
	// the deduction alone (shrink branch).
	Charged balance.U128

	// Credited is the value of freed bytes (shrink branch only).
	Credited balance.U128

	// Refund is what is left for the receiver.
	Refund balance.U128
}

// Transfers reports whether the refund exceeds DustThreshold.
func (s Settlement) Transfers() bool {
	return DustThreshold.Less(s.Refund)
}

// Settle computes the refund for a finished operation.
//
// Growth: cost = (after - before) * byteCost + deduction, and
// refund = attached - cost.
// Shrinkage: available = attached + (before - after) * byteCost, and
// refund = available - deduction.
func Settle(in Inputs) (Settlement, error) {
	if in.StorageAfter >= in.StorageBefore {
		grown := balance.From64(in.StorageAfter - in.StorageBefore)
		cost, err := grown.CheckedMul(in.ByteCost)
		if err != nil {
			return Settlement{}, fmt.Errorf("storage cost: %w", err)
		}
		cost, err = cost.CheckedAdd(in.Deduction)
		if err != nil {
			return Settlement{}, fmt.Errorf("storage cost: %w", err)
		}
		if in.Attached.Less(cost) {
			return Settlement{}, insufficient(cost.SaturatingSub(in.Attached), cost, in.Attached)
		}
		return Settlement{Charged: cost, Refund: in.Attached.SaturatingSub(cost)}, nil
	}

	freed := balance.From64(in.StorageBefore - in.StorageAfter)
	credit, err := freed.CheckedMul(in.ByteCost)
	if err != nil {
		return Settlement{}, fmt.Errorf("storage credit: %w", err)
	}
	available, err := in.Attached.CheckedAdd(credit)
	if err != nil {
		return Settlement{}, fmt.Errorf("storage credit: %w", err)
	}
	if available.Less(in.Deduction) {
		return Settlement{}, insufficient(in.Deduction.SaturatingSub(available), in.Deduction, available)
	}
	return Settlement{
		Charged:  in.Deduction,
		Credited: credit,
		Refund:   available.SaturatingSub(in.Deduction),
	}, nil
}

func insufficient(shortfall, required, available balance.U128) *fault.Error {
	return fault.New(fault.InsufficientDeposit,
		"Must attach %s yoctoNEAR more to cover storage and deductions", shortfall).
		With("shortfall", shortfall.String()).
		With("required", required.String()).
		With("available", available.String())
}

// Option configures Deposit.
type Option func(*options)

type options struct {
	receiver  *account.ID
	deduction balance.U128
}

// WithReceiver sends the refund to receiver instead of the caller.
func WithReceiver(receiver account.ID) Option {
	return func(o *options) {
		o.receiver = &receiver
	}
}

// WithDeduction charges amount on top of storage growth.
func WithDeduction(amount balance.U128) Option {
	return func(o *options) {
		o.deduction = amount
	}
}

// Deposit runs f and settles the attached deposit against the storage it
// used. It returns f's result; the refund is a side effect through
// h.Transfer. If f fails its error is returned without settling.
func Deposit[R any](ctx context.Context, h Host, f func(context.Context) (R, error), opts ...Option) (R, error) {
	var zero R

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	before, err := h.StorageUsage(ctx)
	if err != nil {
		return zero, fmt.Errorf("storage usage before: %w", err)
	}
	attached := h.AttachedDeposit()

	r, err := f(ctx)
	if err != nil {
		return zero, err
	}

	after, err := h.StorageUsage(ctx)
	if err != nil {
		return zero, fmt.Errorf("storage usage after: %w", err)
	}

	s, err := Settle(Inputs{
		StorageBefore: before,
		StorageAfter:  after,
		ByteCost:      h.StorageByteCost(),
		Attached:      attached,
		Deduction:     o.deduction,
	})
	if err != nil {
		return zero, err
	}

	if s.Transfers() {
		receiver := h.Predecessor()
		if o.receiver != nil {
			receiver = *o.receiver
		}
		if err := h.Transfer(ctx, receiver, s.Refund); err != nil {
			return zero, fmt.Errorf("refund transfer: %w", err)
		}
	}

	return r, nil
}
