package commands

import (
	"fmt"
	"strings"

	"github.com/erraggy/orgtree/internal/cliutil"
	"github.com/erraggy/orgtree/validator"
	"github.com/spf13/cobra"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Mode       string
	Strict     bool
	NoWarnings bool
	Quiet      bool
	Format     string
}

// validateIssue is the structured form of a validation issue.
type validateIssue struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// validateOutput is the structured result of the validate command.
type validateOutput struct {
	Input        string          `json:"input" yaml:"input"`
	Mode         string          `json:"mode" yaml:"mode"`
	Valid        bool            `json:"valid" yaml:"valid"`
	Persons      int             `json:"persons" yaml:"persons"`
	ErrorCount   int             `json:"errorCount" yaml:"errorCount"`
	WarningCount int             `json:"warningCount" yaml:"warningCount"`
	Errors       []validateIssue `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// parseMode maps a mode name to a validator.Mode.
func parseMode(s string) (validator.Mode, error) {
	switch strings.ToLower(s) {
	case "", "create":
		return validator.ModeCreate, nil
	case "update":
		return validator.ModeUpdate, nil
	case "fragment":
		return validator.ModeFragment, nil
	default:
		return 0, fmt.Errorf("invalid mode '%s'. Valid modes: create, update, fragment", s)
	}
}

func newValidateCommand() *cobra.Command {
	flags := &ValidateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate a tree document",
		Long: `Validate a tree document, a partial update document, or a person
fragment without storing it.

Exit Codes:
  0    Validation successful
  1    Validation failed with errors`,
		Example: `  orgtree validate tree.xml
  orgtree validate --mode update patch.xml
  orgtree validate --mode fragment person.xml
  cat tree.xml | orgtree validate -q -
  orgtree validate --format json tree.xml | jq '.valid'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.Mode, "mode", "create", "document kind: create, update, or fragment")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "report empty names as errors")
	cmd.Flags().BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only output the validation result")
	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	return cmd
}

func runValidate(cmd *cobra.Command, path string, flags *ValidateFlags) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	mode, err := parseMode(flags.Mode)
	if err != nil {
		return err
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	result, err := validator.ValidateWithOptions(
		validator.WithBytes(data),
		validator.WithMode(mode),
		validator.WithStrictMode(flags.Strict),
		validator.WithIncludeWarnings(!flags.NoWarnings),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.Format != FormatText {
		output := validateOutput{
			Input:        cliutil.DisplayPath(path),
			Mode:         mode.String(),
			Valid:        result.Valid,
			Persons:      result.PersonCount,
			ErrorCount:   result.ErrorCount,
			WarningCount: result.WarningCount,
		}
		for _, e := range result.Errors {
			output.Errors = append(output.Errors, validateIssue{Path: e.Path, Message: e.Message, Field: e.Field, Line: e.Line})
		}
		for _, w := range result.Warnings {
			output.Warnings = append(output.Warnings, validateIssue{Path: w.Path, Message: w.Message, Field: w.Field, Line: w.Line})
		}
		if err := OutputStructured(out, output, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			cliutil.Writef(cmd.ErrOrStderr(), "Validating %s as %s document\n", cliutil.DisplayPath(path), mode)
			for _, e := range result.Errors {
				cliutil.Writef(out, "%s\n", e)
			}
			for _, w := range result.Warnings {
				cliutil.Writef(out, "%s\n", w)
			}
		}
		if result.Valid {
			cliutil.Writef(out, "✓ valid (%d persons, %d warnings)\n", result.PersonCount, result.WarningCount)
		} else {
			cliutil.Writef(out, "✗ invalid (%d errors, %d warnings)\n", result.ErrorCount, result.WarningCount)
		}
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount)
	}
	return nil
}
