package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
)

// TokenInfo describes a classified token id.
type TokenInfo struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Group string `json:"group,omitempty"`
	Index uint64 `json:"index,omitempty"`
}

// String renders the id for text output.
func (i TokenInfo) String() string {
	if i.Group != "" {
		return fmt.Sprintf("%s %s (group %s, index %d)", i.Kind, i.ID, i.Group, i.Index)
	}
	return fmt.Sprintf("%s %s", i.Kind, i.ID)
}

// NewTokenCommand creates the token command group.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect token ids",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <id>",
		Short: "Classify a token id as manual or group item",
		Long: `Classify a token id.

A manual id never contains the separator "_"; a group item is
"{group}_{index}" with a decimal index. Anything else is rejected.

Examples:
  collectibles token parse poster
  collectibles token parse vip_12 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenParse(rootOpts, args[0], cmd)
		},
	})

	return cmd
}

func runTokenParse(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ident, err := token.Parse(id)
	if err != nil {
		return formatter.Fault(err)
	}

	info := TokenInfo{ID: string(ident.ID), Kind: ident.Kind.String()}
	if ident.Kind == token.KindGroupItem {
		info.Group = string(ident.Item.Group)
		info.Index = ident.Item.Index
	}
	return formatter.Success(info)
}
