package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/logging"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration jsonview runs with after merging the global file
(~/.config/jsonview/jsonview.yml) with the nearest project jsonview.yml or
jsonview.toml and applying defaults.

Examples:
  jsonview config
  jsonview config --config ./ci.yml
  jsonview config schema > jsonview.schema.json`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := cli.ConfigPath(cmd)
	if err != nil {
		return err
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}

	if cli.GetOptions(cmd).JSONOutput {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		return printJSON(cmd, doc)
	}

	out := cmd.OutOrStdout()
	if path != "" {
		fmt.Fprintf(out, "# Source: %s\n", path)
	} else {
		fmt.Fprintln(out, "# Source: defaults")
	}
	fmt.Fprint(out, string(data))
	return nil
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for jsonview.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFrom(args[0]); err != nil {
				return err
			}
			logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).Success(args[0] + " is valid")
			return nil
		},
	}
}
