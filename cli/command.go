package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/logging"
)

// CommandOptions holds the persistent flags shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with the standard jsonview flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a jsonview.yml or jsonview.toml file")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, raised to debug by --verbose and
// switched to JSON by --json.
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logging.NewLogger("jsonview-cli").Logger

	opts := GetOptions(cmd)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if opts.JSONOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts the standard flags from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig reads the file named by --config, or else the layered
// configuration for the working directory, falling back to defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.LoadFrom(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(cwd)
}

// ConfigPath returns the file LoadConfig would read first, or "" when only
// defaults apply.
func ConfigPath(cmd *cobra.Command) (string, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	found, err := config.FindConfigFile(cwd)
	if err != nil {
		return "", nil
	}
	return found, nil
}
