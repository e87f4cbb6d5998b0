package cli

import (
	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

// AmountOptions holds flags for the amount commands.
type AmountOptions struct {
	*RootOptions
	Decimals uint8
	Exact    bool // convert the decimal text without a float round trip
}

// FixedPoint is the result of an amount conversion.
type FixedPoint struct {
	Value    string `json:"value"`
	Raw      string `json:"raw"`
	Decimals uint8  `json:"decimals"`
}

func (f FixedPoint) String() string {
	return f.Raw
}

// DecimalAmount is a FixedPoint shown by its decimal value.
type DecimalAmount FixedPoint

func (d DecimalAmount) String() string {
	return d.Value
}

// NewAmountCommand creates the amount command group.
func NewAmountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AmountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "amount",
		Short: "Convert USN amounts and NEAR balances",
		Long: `Convert between decimal USN amounts and their fixed-point form,
and render yoctoNEAR balances in NEAR.

--decimals defaults to usn_decimals from the configuration (18).`,
	}
	cmd.PersistentFlags().Uint8Var(&opts.Decimals, "decimals", usn.DefaultDecimals, "fixed-point precision")

	toFixed := &cobra.Command{
		Use:   "to-fixed <value>",
		Short: "Convert a decimal amount to fixed point",
		Long: `Convert a decimal amount to fixed point: round(value * 10^decimals).

Without --exact the value goes through a float64 first, the way amounts
are stored. With --exact the decimal text is scaled directly.

A leading "-" reads as a flag; pass such values after "--".

Examples:
  collectibles amount to-fixed 1.5
  collectibles amount to-fixed 0.1 --exact --decimals 6
  collectibles amount to-fixed -- -1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToFixed(opts, args[0], cmd)
		},
	}
	toFixed.Flags().BoolVar(&opts.Exact, "exact", false, "scale the decimal text without float rounding")

	fromFixed := &cobra.Command{
		Use:   "from-fixed <raw>",
		Short: "Render a fixed-point amount as a decimal",
		Args:  cobra.ExactArgs(1),
		Example: `  collectibles amount from-fixed 1500000000000000000
  collectibles amount from-fixed 2500000 --decimals 6`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFromFixed(opts, args[0], cmd)
		},
	}

	near := &cobra.Command{
		Use:           "near <yocto>",
		Short:         "Render a yoctoNEAR balance in NEAR",
		Args:          cobra.ExactArgs(1),
		Example:       "  collectibles amount near 1500000000000000000000000",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNear(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(toFixed, fromFixed, near)
	return cmd
}

// decimals returns --decimals, or the configured precision when the flag
// was not given.
func (o *AmountOptions) decimals(cmd *cobra.Command) (uint8, error) {
	if cmd.Flags().Changed("decimals") {
		return o.Decimals, nil
	}
	cfg, err := loadConfig(o.RootOptions)
	if err != nil {
		return 0, err
	}
	return cfg.USNDecimals, nil
}

func runToFixed(opts *AmountOptions, value string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	decimals, err := opts.decimals(cmd)
	if err != nil {
		return err
	}

	var raw balance.U128
	if opts.Exact {
		raw, err = usn.ParseFixed(value, decimals)
	} else {
		var a usn.Amount
		a, err = usn.ParseWithDecimals(value, decimals)
		raw = a.ToFixedPoint()
	}
	if err != nil {
		return formatter.Fault(err)
	}

	return formatter.Success(FixedPoint{Value: value, Raw: raw.String(), Decimals: decimals})
}

func runFromFixed(opts *AmountOptions, rawText string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	decimals, err := opts.decimals(cmd)
	if err != nil {
		return err
	}
	raw, err := balance.Parse(rawText)
	if err != nil {
		return formatter.Fault(err)
	}
	if decimals > usn.MaxDecimals {
		_, err := usn.FromFixedPoint(raw, decimals)
		return formatter.Fault(err)
	}

	return formatter.Success(DecimalAmount{
		Value:    usn.FormatFixed(raw, decimals),
		Raw:      raw.String(),
		Decimals: decimals,
	})
}

// NearBalance is a balance in both units.
type NearBalance struct {
	Yocto string `json:"yocto"`
	Near  string `json:"near"`
}

func (b NearBalance) String() string {
	return b.Near
}

func runNear(opts *AmountOptions, yocto string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	amount, err := balance.Parse(yocto)
	if err != nil {
		return formatter.Fault(err)
	}
	return formatter.Success(NearBalance{Yocto: amount.String(), Near: balance.FormatNear(amount)})
}
