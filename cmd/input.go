package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/errors"
)

// stdinSource is the source name shown for piped input.
const stdinSource = "stdin"

// stdinPiped reports whether the command's stdin is a pipe or file rather
// than a terminal.
func stdinPiped(cmd *cobra.Command) bool {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// readInput returns the document text named by arg: a path, "-" for stdin,
// or "" for stdin when it is piped. The second result names the source.
func readInput(cmd *cobra.Command, arg string) (string, string, error) {
	if arg == "" || arg == "-" {
		if arg == "" && !stdinPiped(cmd) {
			return "", "", errors.EmptyInput()
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read stdin")
		}
		return string(data), stdinSource, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read file").
			WithDetail("path", arg)
	}
	return string(data), arg, nil
}

// requireText rejects blank documents for the non-interactive commands.
func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.EmptyInput()
	}
	return nil
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
