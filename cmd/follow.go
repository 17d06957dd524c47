package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/follow"
	"github.com/grovetools/jsonview/tui"
	"github.com/grovetools/jsonview/tui/components/jsontree"
)

// NewFollowCmd creates the command that tails a JSON-lines file.
func NewFollowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "follow <file>",
		Short: "Show each new JSON line of a file as it is written",
		Long: `Tails a JSON-lines file and loads every complete JSON line as the current
document. Lines that are not valid JSON are skipped.

Examples:
  jsonview follow .jsonview/logs/jsonview-cli-2026-01-02.log
  jsonview follow events.jsonl --from-start --depth 1`,
		Args: cobra.ExactArgs(1),
		RunE: runFollow,
	}

	cmd.Flags().Bool("from-start", false, "Replay the existing lines before following")
	cmd.Flags().Bool("poll", false, "Poll for changes instead of using inotify")
	cmd.Flags().IntP("depth", "d", -1, "Initial expand depth, -1 expands everything")

	return cmd
}

func runFollow(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	tui.InitializeTUI(cfg)

	fromStart, _ := cmd.Flags().GetBool("from-start")
	poll, _ := cmd.Flags().GetBool("poll")
	depth := cfg.Tree.Depth()
	if cmd.Flags().Changed("depth") {
		depth, _ = cmd.Flags().GetInt("depth")
	}

	path := args[0]
	follower, err := follow.Start(path, follow.Options{FromStart: fromStart, Poll: poll})
	if err != nil {
		return err
	}
	defer follower.Stop()

	model := jsontree.New(treeOptions(cfg, depth, filepath.Base(path)))
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case doc, ok := <-follower.Documents():
				if !ok {
					return
				}
				program.Send(jsontree.LoadMsg{
					Text:   doc.Text,
					Source: fmt.Sprintf("%s:%d", filepath.Base(path), doc.Line),
				})
			}
		}
	})

	_, runErr := program.Run()
	cancel()
	follower.Stop()
	wg.Wait()

	if skipped := follower.Skipped(); skipped > 0 {
		logger.WithField("skipped", skipped).Debug("Non-JSON lines ignored")
	}
	if runErr != nil {
		return errors.Wrap(runErr, errors.ErrCodeInternal, "error running TUI")
	}
	return nil
}
