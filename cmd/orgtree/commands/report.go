package commands

import (
	"strings"

	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/report"
	"github.com/erraggy/orgtree/validator"
	"github.com/spf13/cobra"
)

// ReportFlags contains flags for the report command
type ReportFlags struct {
	Path   string
	Format string
}

func newReportCommand() *cobra.Command {
	flags := &ReportFlags{}

	cmd := &cobra.Command{
		Use:   "report <file|->",
		Short: "Render a tree document or one of its subtrees",
		Example: `  orgtree report tree.xml
  orgtree report --format text tree.xml
  orgtree report --path "person[@id='1']/children" --format json tree.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.Path, "path", "", "path expression of the subtree to render; empty renders the whole tree")
	cmd.Flags().StringVar(&flags.Format, "format", string(report.FormatXML), "output format: xml, json, yaml, or text")
	return cmd
}

func runReport(cmd *cobra.Command, path string, flags *ReportFlags) error {
	format, err := report.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	var scope *pathexpr.Path
	if strings.TrimSpace(flags.Path) != "" {
		if scope, err = pathexpr.Parse(flags.Path); err != nil {
			return err
		}
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	tree, err := validator.LoadTree(data, validator.ModeCreate)
	if err != nil {
		return err
	}

	out, err := report.Render(tree, scope, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
