package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/pkg/watch"
	"github.com/grovetools/jsonview/state"
	"github.com/grovetools/jsonview/tui"
	"github.com/grovetools/jsonview/tui/components/jsontree"
)

const shutdownTimeout = 2 * time.Second

// NewViewCmd creates the interactive tree command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Browse a JSON document as a foldable tree",
		Long: `Opens the document in an interactive tree. Values can be searched, edited in
place and synced back to the input text.

Without a file, a piped stdin is read. With --listen the viewer also accepts
documents from a host over a websocket and may start empty.

Examples:
  jsonview view package.json
  curl -s https://api.github.com/repos/golang/go | jsonview view
  jsonview view config.json --watch --query timeout
  jsonview view --listen 127.0.0.1:7007`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	cmd.Flags().BoolP("watch", "w", false, "Reload the file when it changes on disk")
	cmd.Flags().String("listen", "", "Accept host messages on this address (overrides bridge.listen)")
	cmd.Flags().StringP("query", "q", "", "Initial search query")
	cmd.Flags().IntP("depth", "d", config.DefaultExpandDepth, "Initial expand depth, -1 expands everything")

	return cmd
}

// viewFlags are the view command's flags after config defaults are applied.
type viewFlags struct {
	watch  bool
	listen string
	query  string
	depth  int
}

func resolveViewFlags(cmd *cobra.Command, cfg *config.Config) viewFlags {
	f := viewFlags{
		listen: cfg.Bridge.Listen,
		depth:  cfg.Tree.Depth(),
	}
	f.watch, _ = cmd.Flags().GetBool("watch")
	f.query, _ = cmd.Flags().GetString("query")
	if cmd.Flags().Changed("listen") {
		f.listen, _ = cmd.Flags().GetString("listen")
	}
	if cmd.Flags().Changed("depth") {
		f.depth, _ = cmd.Flags().GetInt("depth")
	}
	return f
}

// treeOptions maps the configuration onto the tree view.
func treeOptions(cfg *config.Config, depth int, title string) jsontree.Options {
	opts := jsontree.DefaultOptions()
	opts.Session = session.Options{
		ExpandDepth: depth,
		SyncIndent:  cfg.Sync.Indent,
	}
	opts.IndentWidth = cfg.Tree.IndentWidth
	opts.JumpToFirst = cfg.Search.Jump()
	opts.Keybindings = cfg.Keybindings
	opts.Title = title
	return opts
}

func runView(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	tui.InitializeTUI(cfg)

	flags := resolveViewFlags(cmd, cfg)
	piped := stdinPiped(cmd)

	store, err := state.Default()
	if err != nil {
		logger.WithError(err).Debug("State unavailable")
		store = nil
	}

	arg := argOrEmpty(args, 0)
	if arg == "" && !piped && store != nil && cfg.Search.RestoreLast {
		arg, _ = store.GetString(state.KeyLastFile)
		logger.WithField("file", arg).Debug("Restoring last file")
	}
	if flags.query == "" && store != nil && cfg.Search.RestoreLast {
		flags.query, _ = store.GetString(state.KeyLastQuery)
	}

	var text, source string
	if arg != "" || piped {
		text, source, err = readInput(cmd, arg)
		if err != nil {
			return err
		}
	}
	if err := requireText(text); err != nil && flags.listen == "" {
		return err
	}
	if text != "" {
		if _, err := jsonvalue.ParseString(text); err != nil {
			return err
		}
	}
	if flags.watch && (source == "" || source == stdinSource) {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs a file argument")
	}

	opts := treeOptions(cfg, flags.depth, source)

	var server *bridge.Server
	if flags.listen != "" {
		server = bridge.New(logging.NewLogger("jsonview-bridge"), cfg.Bridge.AllowedOrigins)
		if err := server.Listen(flags.listen); err != nil {
			return err
		}
		opts.Sink = server
		if opts.Title == "" {
			opts.Title = "bridge " + server.Addr()
		}
	}

	model := jsontree.New(opts)
	if flags.query != "" {
		model.SetQuery(flags.query)
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if piped {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, programOpts...)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var wg conc.WaitGroup

	if text != "" {
		wg.Go(func() { program.Send(jsontree.LoadMsg{Text: text, Source: source}) })
	}

	if flags.watch {
		w, err := watch.New(source, watch.DefaultDebounce, func(path string) {
			program.Send(reloadMsg(path))
		})
		if err != nil {
			return err
		}
		defer w.Close()
		wg.Go(func() { w.Start(ctx) })
	}

	if server != nil {
		wg.Go(func() {
			if err := server.Serve(); err != nil {
				program.Send(jsontree.HostErrorMsg{Err: err})
			}
		})
		wg.Go(func() {
			bridge.Forward(ctx, server.Inbound(), func(msg bridge.Inbound) {
				program.Send(jsontree.HostMsg{Msg: msg})
			})
		})
	}

	final, runErr := program.Run()

	cancel()
	if server != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Bridge shutdown incomplete")
		}
		done()
	}
	wg.Wait()

	if runErr != nil {
		return errors.Wrap(runErr, errors.ErrCodeInternal, "error running TUI")
	}

	if m, ok := final.(jsontree.Model); ok && store != nil && cfg.Search.RestoreLast {
		saveViewState(logger, store, source, m.Query())
	}
	return nil
}

// reloadMsg reads path for a watched reload.
func reloadMsg(path string) tea.Msg {
	data, err := os.ReadFile(path)
	if err != nil {
		return jsontree.HostErrorMsg{Err: errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to reload file").WithDetail("path", path)}
	}
	return jsontree.LoadMsg{Text: string(data), Source: path}
}

func saveViewState(logger *logrus.Logger, store *state.Store, source, query string) {
	values := map[string]string{state.KeyLastQuery: query}
	if source != "" && source != stdinSource {
		if abs, err := filepath.Abs(source); err == nil {
			values[state.KeyLastFile] = abs
		}
	}
	if err := store.Update(values); err != nil {
		logger.WithError(err).Debug("Failed to save view state")
	}
}
