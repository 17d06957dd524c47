package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/profiling"
)

// NewFmtCmd creates the command that reformats a document.
func NewFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file|-]",
		Short: "Pretty-print or compact a document",
		Long: `Reformats a document the way the tree view's format and compact actions do.
Key order is preserved. The indent defaults to sync.indent from the
configuration.

Examples:
  jsonview fmt data.json
  jsonview fmt data.json --indent 2
  cat data.json | jsonview fmt --compact`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFmt,
	}

	cmd.Flags().Bool("compact", false, "Remove all insignificant whitespace")
	cmd.Flags().Int("indent", 0, "Spaces per level (default from sync.indent)")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	text, _, err := readInput(cmd, argOrEmpty(args, 0))
	if err != nil {
		return err
	}
	if err := requireText(text); err != nil {
		return err
	}

	indent := cfg.Sync.Indent
	if cmd.Flags().Changed("indent") {
		indent, _ = cmd.Flags().GetInt("indent")
	}

	defer profiling.Phase("format")()

	var out string
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		out, err = jsonvalue.Compact(text)
	} else {
		out, err = jsonvalue.Format(text, indent)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
