package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/ledger"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

// LedgerOptions holds flags shared by the ledger commands.
type LedgerOptions struct {
	*RootOptions
	DBPath   string
	Caller   string
	Attached string

	// offer / manual
	MetadataPath string
	Title        string
	Copies       uint64
	Royalty      []string

	// mint / manual
	Receiver string

	// payout
	MaxBeneficiaries int

	// quote
	Fee uint16
}

// Mutation is the output of a mutating ledger call.
type Mutation struct {
	Result  any            `json:"result,omitempty"`
	Receipt ledger.Receipt `json:"receipt"`
}

func (m Mutation) String() string {
	var b strings.Builder
	if m.Result != nil {
		data, err := json.MarshalIndent(m.Result, "", "  ")
		if err == nil {
			b.Write(data)
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "call %s", m.Receipt.CallID)
	if r := m.Receipt.Refund; r != nil {
		fmt.Fprintf(&b, "\nrefunded %s yoctoNEAR to %s (transfer %s)", r.Amount, r.Receiver, r.ID)
	}
	return b.String()
}

// View wraps a read-only result for text output.
type View struct {
	Value any
}

func (v View) String() string {
	data, err := json.MarshalIndent(v.Value, "", "  ")
	if err != nil {
		return fmt.Sprint(v.Value)
	}
	return string(data)
}

// MarshalJSON emits the wrapped value.
func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Value)
}

// NewLedgerCommand creates the ledger command group.
func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Operate a local collectibles ledger",
		Long: `Operate a collectibles ledger stored in a SQLite database.

Mutating commands take the caller and the attached deposit in yoctoNEAR.
Storage growth is charged at storage_byte_cost per byte; the rest of the
deposit is refunded to the caller. Once the owner set is non-empty, only
owners may offer, mint, remove, update, or change owners.

Examples:
  collectibles ledger --db c.db add-owner admin.near --caller admin.near --attached 1000000000000000000000000
  collectibles ledger --db c.db offer vip --title "VIP" --copies 100 --royalty artist.near=1000 --caller admin.near --attached 1000000000000000000000000
  collectibles ledger --db c.db mint vip 10 --receiver fan.near --caller admin.near --attached 1000000000000000000000000
  collectibles ledger --db c.db payout vip_1 1000`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	mutating := func(c *cobra.Command) *cobra.Command {
		c.Flags().StringVar(&opts.Caller, "caller", "", "calling account (required)")
		c.Flags().StringVar(&opts.Attached, "attached", "0", "attached deposit in yoctoNEAR")
		_ = c.MarkFlagRequired("caller")
		c.SilenceUsage = true
		c.SilenceErrors = true
		return c
	}
	view := func(c *cobra.Command) *cobra.Command {
		c.SilenceUsage = true
		c.SilenceErrors = true
		return c
	}

	offer := mutating(&cobra.Command{
		Use:   "offer <group>",
		Short: "Create a token group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				md, err := opts.metadata()
				if err != nil {
					return nil, err
				}
				table, err := parseRoyaltyTable(opts.Royalty)
				if err != nil {
					return nil, err
				}
				o, receipt, err := l.OfferGroup(ctx, call, args[0], md, table)
				return Mutation{Result: o, Receipt: receipt}, err
			})
		},
	})
	offer.Flags().StringVar(&opts.MetadataPath, "metadata", "", "token metadata JSON file")
	offer.Flags().StringVar(&opts.Title, "title", "", "metadata title (ignored with --metadata)")
	offer.Flags().Uint64Var(&opts.Copies, "copies", 0, "metadata copies, 0 for unlimited (ignored with --metadata)")
	offer.Flags().StringArrayVar(&opts.Royalty, "royalty", nil, "beneficiary as account=basis-points (repeatable)")

	mint := mutating(&cobra.Command{
		Use:   "mint <group> <count>",
		Short: "Mint units of a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				n, err := strconv.ParseUint(args[1], 10, 16)
				if err != nil {
					return nil, NewExitError(ExitCommandError, fmt.Sprintf("count %q must be an integer in [0, 65535]", args[1]))
				}
				receiver, err := account.Parse(opts.Receiver)
				if err != nil {
					return nil, err
				}
				info, receipt, err := l.MintUnits(ctx, call, args[0], uint16(n), receiver)
				return Mutation{Result: info, Receipt: receipt}, err
			})
		},
	})
	mint.Flags().StringVar(&opts.Receiver, "receiver", "", "account receiving the units (required)")
	_ = mint.MarkFlagRequired("receiver")

	manual := mutating(&cobra.Command{
		Use:   "manual <id>",
		Short: "Mint a single token outside any group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				md, err := opts.metadata()
				if err != nil {
					return nil, err
				}
				receiver, err := account.Parse(opts.Receiver)
				if err != nil {
					return nil, err
				}
				tok, receipt, err := l.MintManual(ctx, call, args[0], md, receiver)
				return Mutation{Result: tok, Receipt: receipt}, err
			})
		},
	})
	manual.Flags().StringVar(&opts.MetadataPath, "metadata", "", "token metadata JSON file")
	manual.Flags().StringVar(&opts.Title, "title", "", "metadata title (ignored with --metadata)")
	manual.Flags().Uint64Var(&opts.Copies, "copies", 0, "metadata copies, 0 or 1 (ignored with --metadata)")
	manual.Flags().StringVar(&opts.Receiver, "receiver", "", "account receiving the token (required)")
	_ = manual.MarkFlagRequired("receiver")

	removeGroup := mutating(&cobra.Command{
		Use:   "remove-group <group>",
		Short: "Delete a group offer; freed storage is refunded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				receipt, err := l.RemoveGroup(ctx, call, args[0])
				return Mutation{Receipt: receipt}, err
			})
		},
	})

	addOwner := mutating(&cobra.Command{
		Use:   "add-owner <account>",
		Short: "Add an account to the owner set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				id, err := account.Parse(args[0])
				if err != nil {
					return nil, err
				}
				receipt, err := l.AddOwner(ctx, call, id)
				return Mutation{Receipt: receipt}, err
			})
		},
	})

	removeOwner := mutating(&cobra.Command{
		Use:   "remove-owner <account>",
		Short: "Remove an account from the owner set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(opts, cmd, func(ctx context.Context, l *ledger.Ledger, call ledger.Call) (any, error) {
				id, err := account.Parse(args[0])
				if err != nil {
					return nil, err
				}
				receipt, err := l.RemoveOwner(ctx, call, id)
				return Mutation{Receipt: receipt}, err
			})
		},
	})

	payout := view(&cobra.Command{
		Use:   "payout <token> <amount>",
		Short: "Split a sale amount through a token's royalty table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				amount, err := balance.Parse(args[1])
				if err != nil {
					return nil, err
				}
				p, err := l.Payout(ctx, args[0], amount, opts.MaxBeneficiaries)
				return PayoutLines(p), err
			})
		},
	})
	payout.Flags().IntVar(&opts.MaxBeneficiaries, "max-beneficiaries", 0, "payout limit, 0 for max_payout_beneficiaries")

	quote := view(&cobra.Command{
		Use:   "quote <token> <price-usn>",
		Short: "Price a resale listing of a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				price, err := usn.Exact(args[1], l.Config().USNDecimals)
				if err != nil {
					return nil, err
				}
				ticket, err := l.QuoteResale(ctx, args[0], price, royalty.New(opts.Fee))
				return View{Value: ticket}, err
			})
		},
	})
	quote.Flags().Uint16Var(&opts.Fee, "fee", 0, "marketplace fee in basis points")

	show := view(&cobra.Command{
		Use:   "token <id>",
		Short: "Show a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				tok, err := l.Token(ctx, args[0])
				return View{Value: tok}, err
			})
		},
	})

	tokens := view(&cobra.Command{
		Use:   "tokens <owner>",
		Short: "List the tokens an account owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				owner, err := account.Parse(args[0])
				if err != nil {
					return nil, err
				}
				toks, err := l.TokensFor(ctx, owner)
				return View{Value: toks}, err
			})
		},
	})

	groups := view(&cobra.Command{
		Use:   "groups",
		Short: "List groups in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				names, err := l.Groups(ctx)
				return View{Value: names}, err
			})
		},
	})

	transfers := view(&cobra.Command{
		Use:   "transfers",
		Short: "List refunds issued, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerView(opts, cmd, func(ctx context.Context, l *ledger.Ledger) (any, error) {
				ts, err := l.Transfers(ctx)
				return View{Value: ts}, err
			})
		},
	})

	cmd.AddCommand(offer, mint, manual, removeGroup, addOwner, removeOwner, payout, quote, show, tokens, groups, transfers)
	return cmd
}

// metadata reads --metadata, or builds metadata from --title and --copies.
func (o *LedgerOptions) metadata() (token.Metadata, error) {
	var md token.Metadata
	if o.MetadataPath != "" {
		data, err := os.ReadFile(o.MetadataPath)
		if err != nil {
			return md, WrapExitError(ExitCommandError, "failed to read metadata", err)
		}
		if err := json.Unmarshal(data, &md); err != nil {
			return md, WrapExitError(ExitCommandError, "invalid metadata", err)
		}
		return md, nil
	}
	if o.Title != "" {
		title := o.Title
		md.Title = &title
	}
	if o.Copies > 0 {
		copies, err := jsuint.New(o.Copies)
		if err != nil {
			return md, err
		}
		md.Copies = &copies
	}
	return md, nil
}

// openLedger opens the database and the ledger over it.
func openLedger(ctx context.Context, opts *LedgerOptions) (*store.Store, *ledger.Ledger, error) {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	l, err := ledger.New(ctx, st, cfg, ledger.WithLogger(slog.Default()))
	if err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return st, l, nil
}

// runLedger performs one mutating call and reports its outcome.
func runLedger(opts *LedgerOptions, cmd *cobra.Command, f func(context.Context, *ledger.Ledger, ledger.Call) (any, error)) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	caller, err := account.Parse(opts.Caller)
	if err != nil {
		return formatter.Fault(err)
	}
	attached, err := balance.Parse(opts.Attached)
	if err != nil {
		return formatter.Fault(err)
	}

	st, l, err := openLedger(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	formatter.VerboseLog("Calling as %s with %s yoctoNEAR attached", caller, attached)
	out, err := f(ctx, l, ledger.Call{Caller: caller, Attached: attached})
	if err != nil {
		return formatter.Fault(err)
	}
	return formatter.Success(out)
}

// runLedgerView performs one read-only call and reports its result.
func runLedgerView(opts *LedgerOptions, cmd *cobra.Command, f func(context.Context, *ledger.Ledger) (any, error)) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, l, err := openLedger(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	out, err := f(ctx, l)
	if err != nil {
		return formatter.Fault(err)
	}
	return formatter.Success(out)
}
