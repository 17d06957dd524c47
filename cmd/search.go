package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
	"github.com/grovetools/jsonview/pkg/profiling"
)

// NewSearchCmd creates the command that lists search hits without the TUI.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query> [file|-]",
		Short: "List every key and value that contains a query",
		Long: `Searches keys and scalar values for a case-insensitive literal query, the same
way the tree view does, and prints one row per occurrence with the path of
the line it was found on.

Examples:
  jsonview search name package.json
  curl -s https://api.github.com/repos/golang/go | jsonview search url --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSearch,
	}
	return cmd
}

// searchHit is one row of the search command's output.
type searchHit struct {
	Index      int    `json:"index"`
	Line       int    `json:"line"`
	Field      string `json:"field"`
	Path       string `json:"path"`
	Occurrence int    `json:"occurrence"`
	Text       string `json:"text"`
}

func searchHits(lines []linemodel.Line, query string) []searchHit {
	matches := linemodel.Search(lines, query)
	hits := make([]searchHit, 0, len(matches))
	for i, m := range matches {
		l := lines[m.LineID]
		text := l.Key
		if m.Field == linemodel.FieldValue {
			text = jsonvalue.FormatScalar(l.Value)
		}
		hits = append(hits, searchHit{
			Index:      i + 1,
			Line:       m.LineID,
			Field:      m.Field.String(),
			Path:       l.Path.String(),
			Occurrence: m.Occurrence,
			Text:       text,
		})
	}
	return hits
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	text, _, err := readInput(cmd, argOrEmpty(args, 1))
	if err != nil {
		return err
	}
	if err := requireText(text); err != nil {
		return err
	}
	stop := profiling.Phase("parse")
	root, err := jsonvalue.ParseString(text)
	stop()
	if err != nil {
		return err
	}

	stop = profiling.Phase("search")
	hits := searchHits(linemodel.Build(root), query)
	stop()

	if cli.GetOptions(cmd).JSONOutput {
		return printJSON(cmd, hits)
	}

	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{
			strconv.Itoa(h.Index),
			strconv.Itoa(h.Line),
			h.Field,
			h.Path,
			strconv.Itoa(h.Occurrence),
			h.Text,
		})
	}
	printTable(cmd, []string{"#", "LINE", "FIELD", "PATH", "OCCURRENCE", "TEXT"}, rows)
	pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
	if len(hits) == 0 {
		pretty.WarnPretty(fmt.Sprintf("no matches for %q", query))
		return nil
	}
	pretty.InfoPretty(fmt.Sprintf("%d matches for %q", len(hits), query))
	return nil
}
