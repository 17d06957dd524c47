// Package testutil holds helpers shared by jsonview's tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
)

// WriteJSONFile writes content to name inside a fresh temp directory and
// returns the file's path.
func WriteJSONFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// AppendLine appends text and a newline to path.
func AppendLine(t *testing.T, path, text string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(text + "\n")
	require.NoError(t, err)
}

// MustParse parses text or fails the test.
func MustParse(t *testing.T, text string) jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.ParseString(text)
	require.NoError(t, err, "parse %q", text)
	return v
}

// MustBuild parses text and builds its line model.
func MustBuild(t *testing.T, text string) []linemodel.Line {
	t.Helper()
	return linemodel.Build(MustParse(t, text))
}

// Eventually polls cond every 10ms until it holds or timeout passes.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, timeout, 10*time.Millisecond, msg)
}
