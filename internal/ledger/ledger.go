package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/config"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/refund"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
)

// Call identifies the caller of a mutating operation and the deposit they
// attached to it.
type Call struct {
	Caller   account.ID
	Attached balance.U128
}

// Receipt reports how a mutating call was settled.
type Receipt struct {
	CallID string `json:"call_id"`

	// Refund is nil when nothing above the dust threshold was returned.
	Refund *store.Transfer `json:"refund,omitempty"`
}

// Ledger owns the store and the configuration.
//
// Thread-safety: calls are serialized by the store's single connection;
// a Ledger is safe for concurrent use.
type Ledger struct {
	store  *store.Store
	cfg    config.Config
	clock  *transferClock
	ids    CallIDGenerator
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCallIDs replaces the UUIDv7 call id generator.
func WithCallIDs(gen CallIDGenerator) Option {
	return func(l *Ledger) {
		l.ids = gen
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// New creates a ledger over s. The transfer clock resumes after the last
// recorded transfer.
func New(ctx context.Context, s *store.Store, cfg config.Config, opts ...Option) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	last, err := s.LastTransferSeq(ctx)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		store:  s,
		cfg:    cfg,
		clock:  resumeClock(last),
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Config returns the ledger's configuration.
func (l *Ledger) Config() config.Config {
	return l.cfg
}

// mutate runs f as one settled call: inside a transaction, wrapped by the
// deposit reconciler, committed only on success.
func mutate[R any](
	ctx context.Context,
	l *Ledger,
	call Call,
	op string,
	f func(ctx context.Context, tx *store.Tx) (R, error),
	opts ...refund.Option,
) (R, Receipt, error) {
	var zero R
	callID := l.ids.Generate()
	receipt := Receipt{CallID: callID}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return zero, receipt, err
	}
	defer tx.Rollback()

	h := &txHost{
		tx:       tx,
		clock:    l.clock,
		call:     call,
		callID:   callID,
		byteCost: l.cfg.StorageByteCost,
	}

	l.logger.Debug("call started",
		"op", op,
		"call_id", callID,
		"caller", call.Caller,
		"attached", call.Attached.String(),
	)

	r, err := refund.Deposit(ctx, h, func(ctx context.Context) (R, error) {
		return f(ctx, tx)
	}, opts...)
	if err != nil {
		if fault.Is(err, fault.InsufficientDeposit) {
			shortfall, _ := fault.Detail(err, "shortfall")
			l.logger.Warn("deposit rejected",
				"op", op,
				"call_id", callID,
				"caller", call.Caller,
				"shortfall", shortfall,
			)
		} else {
			l.logger.Debug("call failed",
				"op", op,
				"call_id", callID,
				"code", fault.CodeOf(err),
				"error", err,
			)
		}
		return zero, receipt, err
	}

	if err := tx.Commit(); err != nil {
		return zero, receipt, err
	}

	receipt.Refund = h.refund
	if h.refund != nil {
		l.logger.Info("refund issued",
			"op", op,
			"call_id", callID,
			"receiver", h.refund.Receiver,
			"amount", h.refund.Amount.String(),
			"seq", h.refund.Seq,
		)
	}
	return r, receipt, nil
}

// requireOwner fails with UNAUTHORIZED unless the owner set is empty or
// contains caller.
func requireOwner(ctx context.Context, tx *store.Tx, caller account.ID) error {
	owners, err := tx.Owners(ctx, 0, 1)
	if err != nil {
		return err
	}
	if len(owners) == 0 {
		return nil
	}
	ok, err := tx.IsOwner(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return fault.New(fault.Unauthorized, "%s is not an owner", caller).
			With("caller", string(caller))
	}
	return nil
}
