package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/ledger"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// assertGroupUnits checks the number of units created in a group.
func assertGroupUnits(ctx context.Context, l *ledger.Ledger, a Assertion) error {
	offer, err := l.Group(ctx, a.Group)
	if err != nil {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("group %s with %d units", a.Group, a.Count),
			Actual:   err.Error(),
		}
	}
	if got := offer.UnitsCreated.Get(); got != uint64(a.Count) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("group %s with %d units", a.Group, a.Count),
			Actual:   fmt.Sprintf("%d units", got),
		}
	}
	return nil
}

// assertTokenOwner checks that a token exists and who owns it.
func assertTokenOwner(ctx context.Context, l *ledger.Ledger, a Assertion) error {
	tok, err := l.Token(ctx, a.Token)
	if err != nil {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("token %s owned by %s", a.Token, a.Account),
			Actual:   err.Error(),
		}
	}
	if string(tok.OwnerID) != a.Account {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("token %s owned by %s", a.Token, a.Account),
			Actual:   fmt.Sprintf("owned by %s", tok.OwnerID),
		}
	}
	return nil
}

// assertTokensOwned checks how many tokens an account owns.
func assertTokensOwned(ctx context.Context, l *ledger.Ledger, a Assertion) error {
	toks, err := l.TokensFor(ctx, account.ID(a.Account))
	if err != nil {
		return fmt.Errorf("list tokens of %s: %w", a.Account, err)
	}
	if len(toks) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s owns %d tokens", a.Account, a.Count),
			Actual:   fmt.Sprintf("%d tokens", len(toks)),
		}
	}
	return nil
}

// assertTransferCount checks the number of refunds issued.
func assertTransferCount(ctx context.Context, l *ledger.Ledger, a Assertion) error {
	transfers, err := l.Transfers(ctx)
	if err != nil {
		return fmt.Errorf("list transfers: %w", err)
	}
	if len(transfers) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d transfers", a.Count),
			Actual:   fmt.Sprintf("%d transfers", len(transfers)),
		}
	}
	return nil
}

// assertIsOwner checks owner set membership.
func assertIsOwner(ctx context.Context, l *ledger.Ledger, a Assertion) error {
	ok, err := l.IsOwner(ctx, account.ID(a.Account))
	if err != nil {
		return fmt.Errorf("check owner %s: %w", a.Account, err)
	}
	if ok != a.Owner {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("owner(%s) = %t", a.Account, a.Owner),
			Actual:   fmt.Sprintf("owner(%s) = %t", a.Account, ok),
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the ledger's final
// state. Returns a slice of error messages for failed assertions.
func EvaluateAssertions(ctx context.Context, l *ledger.Ledger, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertGroupUnits:
			err = assertGroupUnits(ctx, l, assertion)
		case AssertTokenOwner:
			err = assertTokenOwner(ctx, l, assertion)
		case AssertTokensOwned:
			err = assertTokensOwned(ctx, l, assertion)
		case AssertTransferCount:
			err = assertTransferCount(ctx, l, assertion)
		case AssertIsOwner:
			err = assertIsOwner(ctx, l, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
