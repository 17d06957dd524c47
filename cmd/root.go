package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/pkg/profiling"
	"github.com/grovetools/jsonview/version"
)

// NewRootCmd assembles the jsonview command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"jsonview",
		"Browse, search and edit JSON documents in the terminal",
	)
	root.Long = `jsonview shows a JSON document as a foldable tree with search, in-place value
editing and sync back to the input text. It can also act as a viewer for a
host program over a websocket.

Examples:
  jsonview view data.json
  cat data.json | jsonview
  jsonview search id data.json
  jsonview fmt --compact data.json`
	root.Args = cobra.MaximumNArgs(1)
	root.RunE = runView
	root.Flags().AddFlagSet(NewViewCmd().Flags())

	root.AddCommand(NewViewCmd())
	root.AddCommand(NewFollowCmd())
	root.AddCommand(NewLinesCmd())
	root.AddCommand(NewSearchCmd())
	root.AddCommand(NewFmtCmd())
	root.AddCommand(NewSendCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(cli.NewVersionCommand("jsonview"))

	profiler := &profiling.Flags{}
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.Before
	root.PersistentPostRunE = profiler.After

	cli.SetVersionTemplate(root, version.GetInfo())
	cli.ApplyStyledHelpRecursive(root)

	return root
}
