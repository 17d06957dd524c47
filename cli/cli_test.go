package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "config not found",
			err:  errors.ConfigNotFound("/tmp"),
			want: []string{"Configuration not found"},
		},
		{
			name: "invalid config names the file",
			err:  errors.ConfigInvalid("bad theme").WithDetail("path", "/x/jsonview.yml"),
			want: []string{"Invalid configuration", "/x/jsonview.yml"},
		},
		{
			name: "parse error shows offset",
			err:  errors.ParseFailed(fmt.Errorf("unexpected end"), 12),
			want: []string{"invalid JSON", "Near byte offset 12"},
		},
		{
			name: "empty input",
			err:  errors.EmptyInput(),
			want: []string{"No JSON input"},
		},
		{
			name: "transport",
			err:  errors.TransportFailed("dial", fmt.Errorf("refused")),
			want: []string{"Bridge connection failed", "--listen"},
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: []string{"Error: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}
			assert.Equal(t, tt.err, h.Handle(tt.err))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.NotContains(t, buf.String(), "Error details")
		})
	}
}

func TestErrorHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: true, Out: &buf}
	_ = h.Handle(errors.EmptyInput())
	assert.Contains(t, buf.String(), `"code": "EMPTY_INPUT"`)
	assert.Nil(t, h.Handle(nil))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
	assert.Equal(t, []string{"a", "", "b"}, wrapText("a\n\nb", 10))
}

func TestSplitExamples(t *testing.T) {
	desc, ex := splitExamples("Shows a file.\n\nExamples:\n  jsonview view a.json")
	assert.Equal(t, "Shows a file.", desc)
	assert.Equal(t, "jsonview view a.json", ex)

	desc, ex = splitExamples("No examples here.")
	assert.Equal(t, "No examples here.", desc)
	assert.Empty(t, ex)
}

func TestRenderHelp(t *testing.T) {
	root := NewStandardCommand("jsonview", "Inspect JSON documents")
	child := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a document",
		Run:   func(*cobra.Command, []string) {},
	}
	child.Flags().Int("indent", 4, "Indent width")
	root.AddCommand(child)

	var buf bytes.Buffer
	renderHelp(&buf, root, 60)
	out := buf.String()
	assert.Contains(t, out, "JSONVIEW")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "fmt")

	buf.Reset()
	renderHelp(&buf, child, 60)
	out = buf.String()
	assert.Contains(t, out, "--indent")
	assert.Contains(t, out, "(default: 4)")
	assert.True(t, strings.Contains(out, "USAGE"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("theme: gruvbox\n"), 0o644))

	cmd := NewStandardCommand("jsonview", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)

	found, err := ConfigPath(cmd)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestGetOptions(t *testing.T) {
	cmd := NewStandardCommand("jsonview", "test")
	require.NoError(t, cmd.ParseFlags([]string{"-v", "--json"}))

	opts := GetOptions(cmd)
	assert.True(t, opts.Verbose)
	assert.True(t, opts.JSONOutput)
	assert.Empty(t, opts.ConfigFile)
}
