package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grovetools/jsonview/tui/components/table"
)

// terminalWidth is the width of cmd's stdout, or 0 when it is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printTable writes a themed table to a terminal and tab-separated values
// to anything else.
func printTable(cmd *cobra.Command, headers []string, rows [][]string) {
	out := cmd.OutOrStdout()
	width := terminalWidth(cmd)
	if width == 0 {
		fmt.Fprint(out, table.TSV(headers, rows))
		return
	}

	opts := table.DefaultOptions()
	opts.Width = width
	opts.MutedColumns = []int{0}
	fmt.Fprintln(out, table.Render(opts, headers, rows))
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
