package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/ledger"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/testutil"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
)

// Harness is the test execution engine.
// It runs scenarios with sequential call ids and a discarded log.
type Harness struct {
	store  *store.Store
	ledger *ledger.Ledger
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and ledger
// 2. Seed the owner set
// 3. Execute steps, checking each outcome against its expect
// 4. Evaluate assertions against the final state
//
// A returned error means the scenario could not be executed; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	cfg, err := scenario.Configuration()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l, err := ledger.New(ctx, st, cfg,
		ledger.WithCallIDs(testutil.NewSequentialCallIDs("call")),
		ledger.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	h := &Harness{store: st, ledger: l, logger: logger}

	if err := h.seedOwners(ctx, scenario.Owners); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		ev, err := h.executeStep(ctx, step)
		ev.Seq = int64(i + 1)
		result.AddTrace(ev)

		expect := step.Expect
		if expect == "" {
			expect = ExpectOK
		}
		if ev.Outcome != expect {
			msg := fmt.Sprintf("steps[%d] %s: expected %s, got %s", i, step.Op, expect, ev.Outcome)
			if err != nil {
				msg += ": " + err.Error()
			}
			result.AddError(msg)
		}
	}

	for _, msg := range EvaluateAssertions(ctx, l, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// seedOwners writes the initial owner set directly, without a call or
// a deposit.
func (h *Harness) seedOwners(ctx context.Context, owners []string) error {
	for _, o := range owners {
		id, err := account.Parse(o)
		if err != nil {
			return err
		}
		if _, err := h.store.AddOwner(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// executeStep performs one ledger call. The returned event carries the
// outcome; the error is the call's failure, if any.
func (h *Harness) executeStep(ctx context.Context, step Step) (TraceEvent, error) {
	ev := TraceEvent{Op: step.Op, Caller: step.Caller}

	call, err := stepCall(step)
	if err != nil {
		ev.Outcome = outcomeOf(err)
		return ev, err
	}

	var receipt ledger.Receipt
	ev.Result, receipt, err = h.dispatch(ctx, step, call)
	ev.CallID = receipt.CallID
	if receipt.Refund != nil {
		ev.Refund = receipt.Refund.Amount.String()
	}
	if err != nil {
		ev.Result = nil
	}
	ev.Outcome = outcomeOf(err)

	h.logger.Debug("step executed", "op", step.Op, "outcome", ev.Outcome)
	return ev, err
}

func (h *Harness) dispatch(ctx context.Context, step Step, call ledger.Call) (map[string]any, ledger.Receipt, error) {
	var none ledger.Receipt

	switch step.Op {
	case OpOfferGroup:
		var args struct {
			Group    string         `json:"group"`
			Metadata token.Metadata `json:"metadata"`
			Royalty  royalty.Table  `json:"royalty"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		offer, receipt, err := h.ledger.OfferGroup(ctx, call, args.Group, args.Metadata, args.Royalty)
		return map[string]any{
			"group":         string(offer.GroupID),
			"beneficiaries": len(offer.Royalty),
		}, receipt, err

	case OpMintUnits:
		var args struct {
			Group    string     `json:"group"`
			Count    uint16     `json:"count"`
			Receiver account.ID `json:"receiver"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		info, receipt, err := h.ledger.MintUnits(ctx, call, args.Group, args.Count, args.Receiver)
		ids := make([]any, len(info.TokenIDs))
		for i, id := range info.TokenIDs {
			ids[i] = string(id)
		}
		return map[string]any{
			"starting_index": int64(info.StartingIndex.Get()),
			"minted":         int(info.MintedAmount),
			"token_ids":      ids,
		}, receipt, err

	case OpMintManual:
		var args struct {
			Token    string         `json:"token"`
			Metadata token.Metadata `json:"metadata"`
			Receiver account.ID     `json:"receiver"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		tok, receipt, err := h.ledger.MintManual(ctx, call, args.Token, args.Metadata, args.Receiver)
		return map[string]any{
			"token_id": string(tok.TokenID),
			"owner":    string(tok.OwnerID),
		}, receipt, err

	case OpRemoveGroup:
		var args struct {
			Group string `json:"group"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		receipt, err := h.ledger.RemoveGroup(ctx, call, args.Group)
		return nil, receipt, err

	case OpUpdateCollectible:
		var args token.UpdateCollectibleData
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		md, receipt, err := h.ledger.UpdateCollectible(ctx, call, args)
		var out map[string]any
		if md.Title != nil {
			out = map[string]any{"title": *md.Title}
		}
		return out, receipt, err

	case OpAddOwner, OpRemoveOwner:
		var args struct {
			Account account.ID `json:"account"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		if step.Op == OpAddOwner {
			receipt, err := h.ledger.AddOwner(ctx, call, args.Account)
			return nil, receipt, err
		}
		receipt, err := h.ledger.RemoveOwner(ctx, call, args.Account)
		return nil, receipt, err

	case OpPayout:
		var args struct {
			Token            string       `json:"token"`
			Amount           balance.U128 `json:"amount"`
			MaxBeneficiaries int          `json:"max_beneficiaries"`
		}
		if err := decodeArgs(step.Args, &args); err != nil {
			return nil, none, err
		}
		p, err := h.ledger.Payout(ctx, args.Token, args.Amount, args.MaxBeneficiaries)
		shares := make(map[string]any, len(p.Payout))
		for acct, amount := range p.Payout {
			shares[string(acct)] = amount.String()
		}
		return map[string]any{"payout": shares}, none, err

	default:
		return nil, none, fmt.Errorf("unknown op %q", step.Op)
	}
}

// stepCall builds the caller and deposit of a step.
func stepCall(step Step) (ledger.Call, error) {
	var call ledger.Call
	if step.Caller != "" {
		id, err := account.Parse(step.Caller)
		if err != nil {
			return call, err
		}
		call.Caller = id
	}
	if step.Attached != "" {
		amount, err := balance.Parse(step.Attached)
		if err != nil {
			return call, err
		}
		call.Attached = amount
	}
	return call, nil
}

// decodeArgs converts YAML-decoded args into v through JSON, so argument
// types decode exactly as they do on the wire. Unknown keys are rejected.
func decodeArgs(args map[string]interface{}, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}

// outcomeOf names how a call ended: OK, its fault code, or ERROR for
// unclassified failures.
func outcomeOf(err error) string {
	if err == nil {
		return ExpectOK
	}
	if code := fault.CodeOf(err); code != "" {
		return string(code)
	}
	return "ERROR"
}
