package commands

import (
	"github.com/erraggy/orgtree/internal/cliutil"
	"github.com/erraggy/orgtree/validator"
	"github.com/erraggy/orgtree/walker"
	"github.com/spf13/cobra"
)

// personPath is the structured form of one paths entry.
type personPath struct {
	Path  string `json:"path" yaml:"path"`
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Depth int    `json:"depth" yaml:"depth"`
}

func newPathsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "paths <file|->",
		Short: "List the path expression of every person in a tree document",
		Example: `  orgtree paths tree.xml
  orgtree paths --format json tree.xml | jq -r '.[].path'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tree, err := validator.LoadTree(data, validator.ModeCreate)
			if err != nil {
				return err
			}
			collected, err := walker.CollectPersons(tree)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == FormatText {
				for _, info := range collected.All {
					cliutil.Writef(out, "%s\n", info.Path)
				}
				return nil
			}

			entries := make([]personPath, 0, len(collected.All))
			for _, info := range collected.All {
				entries = append(entries, personPath{
					Path:  info.Path,
					ID:    info.Person.ID,
					Name:  info.Person.NameValue(),
					Depth: info.Depth,
				})
			}
			return OutputStructured(out, entries, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", FormatText, "output format: text, json, or yaml")
	return cmd
}
