package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
)

// SplitOptions holds flags for the split command.
type SplitOptions struct {
	*RootOptions
	Amount  string
	Owner   string
	Royalty []string // account=basis points
}

// PayoutLines renders a payout one account per line, sorted.
type PayoutLines royalty.Payout

func (p PayoutLines) String() string {
	accounts := make([]string, 0, len(p.Payout))
	for acct := range p.Payout {
		accounts = append(accounts, string(acct))
	}
	sort.Strings(accounts)

	var b strings.Builder
	for i, acct := range accounts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s", acct, p.Payout[account.ID(acct)])
	}
	return b.String()
}

// MarshalJSON keeps the {"payout": {...}} shape.
func (p PayoutLines) MarshalJSON() ([]byte, error) {
	return json.Marshal(royalty.Payout(p))
}

// NewSplitCommand creates the split command.
func NewSplitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SplitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an amount between royalty beneficiaries and the owner",
		Long: `Split an amount in yoctoNEAR through a royalty table.

Every beneficiary receives floor(amount * bp / 10000); the owner receives
the remainder, so the shares always sum to the amount.

Examples:
  collectibles split --amount 1000 --owner fan.near --royalty artist.near=1000 --royalty label.near=500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Amount, "amount", "", "amount in yoctoNEAR (required)")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "token owner receiving the remainder (required)")
	cmd.Flags().StringArrayVar(&opts.Royalty, "royalty", nil, "beneficiary as account=basis-points (repeatable)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func runSplit(opts *SplitOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	amount, err := balance.Parse(opts.Amount)
	if err != nil {
		return formatter.Fault(err)
	}
	owner, err := account.Parse(opts.Owner)
	if err != nil {
		return formatter.Fault(err)
	}
	table, err := parseRoyaltyTable(opts.Royalty)
	if err != nil {
		return formatter.Fault(err)
	}
	payout, err := table.PayoutLimited(amount, owner, cfg.MaxPayoutBeneficiaries)
	if err != nil {
		return formatter.Fault(err)
	}

	formatter.VerboseLog("Royalty total: %d bp over %d beneficiaries", table.Total(), len(table))
	return formatter.Success(PayoutLines(payout))
}

// parseRoyaltyTable reads "account=bp" entries. Repeating an account is an
// error.
func parseRoyaltyTable(entries []string) (royalty.Table, error) {
	table := royalty.Table{}
	for _, e := range entries {
		name, bp, ok := strings.Cut(e, "=")
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("royalty %q must be account=basis-points", e))
		}
		id, err := account.Parse(name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(bp, 10, 16)
		if err != nil {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("royalty %q: basis points must be an integer in [0, 65535]", e))
		}
		if _, dup := table[id]; dup {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("royalty for %s given twice", id))
		}
		table[id] = royalty.New(uint16(n))
	}
	return table, nil
}
