package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/schema"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	List bool
}

// DefinitionList is the output of schema --list.
type DefinitionList struct {
	Definitions []string `json:"definitions"`
}

func (d DefinitionList) String() string {
	return strings.Join(d.Definitions, "\n")
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the CUE definitions of every wire shape",
		Long: `Print the CUE definitions that documents are validated against.

With --list only the definition names are printed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.List, "list", false, "list definition names only")

	return cmd
}

func runSchema(opts *SchemaOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.List {
		names, err := schema.Definitions()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list definitions", err)
		}
		return formatter.Success(DefinitionList{Definitions: names})
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"source": schema.Source()})
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), schema.Source())
	return err
}
