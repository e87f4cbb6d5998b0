package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Definition string                   `json:"definition"`
	Valid      bool                     `json:"valid"`
	Errors     []schema.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition> <file.json>",
		Short: "Validate a JSON document against a schema definition",
		Long: `Validate a JSON document against one of the CUE definitions printed by
"collectibles schema", e.g. TokenMetadata, TokenOffer, UsnAmount.

Use "-" as the file to read standard input.

Exit codes:
  0 - Document is valid
  1 - Document violates the definition
  2 - Command error (unknown definition, unreadable file, malformed JSON)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, definition, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		_ = formatter.Error("E_READ", fmt.Sprintf("failed to read document: %v", err), nil)
		return &ExitError{Code: ExitCommandError, Message: "failed to read document", Err: err, Reported: true}
	}

	formatter.VerboseLog("Validating %d bytes against #%s", len(data), strings.TrimPrefix(definition, "#"))

	violations, err := schema.Validate(definition, data)
	if err != nil {
		_ = formatter.Error("E_SCHEMA", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "validation could not run", Err: err, Reported: true}
	}

	result := ValidationResult{
		Definition: strings.TrimPrefix(definition, "#"),
		Valid:      len(violations) == 0,
		Errors:     violations,
	}

	if opts.Format == "json" {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(CLIResponse{Status: statusOf(result.Valid), Data: result}); err != nil {
			return err
		}
	} else {
		outputValidationText(cmd, result)
	}

	if !result.Valid {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d violation(s)", len(violations)),
			Reported: true,
		}
	}
	return nil
}

func outputValidationText(cmd *cobra.Command, result ValidationResult) {
	w := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintf(w, "✓ valid #%s\n", result.Definition)
		return
	}

	fmt.Fprintf(w, "✗ invalid #%s\n", result.Definition)
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "  line %d: %s\n", e.Line, e.Error())
			continue
		}
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}

func statusOf(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
