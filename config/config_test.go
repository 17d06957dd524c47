package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/jsonview/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config lookup at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, -1, cfg.Tree.Depth())
	assert.Equal(t, 2, cfg.Tree.IndentWidth)
	assert.True(t, cfg.Search.Jump())
	assert.False(t, cfg.Search.RestoreLast)
	assert.Equal(t, 4, cfg.Sync.Indent)
	assert.Empty(t, cfg.Bridge.Listen)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
theme: gruvbox
tree:
  expand_depth: 0
search:
  jump_to_first: false
  restore_last: true
sync:
  indent: 2
bridge:
  listen: 127.0.0.1:7007
  allowed_origins: ["*"]
keybindings:
  toggle: ["enter", "space"]
`))
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 0, cfg.Tree.Depth())
	assert.Equal(t, 2, cfg.Tree.IndentWidth)
	assert.False(t, cfg.Search.Jump())
	assert.True(t, cfg.Search.RestoreLast)
	assert.Equal(t, 2, cfg.Sync.Indent)
	assert.Equal(t, "127.0.0.1:7007", cfg.Bridge.Listen)
	assert.Equal(t, []string{"*"}, cfg.Bridge.AllowedOrigins)
	assert.Equal(t, []string{"enter", "space"}, cfg.Keybindings["toggle"])
}

func TestLoadFromBytesEmpty(t *testing.T) {
	cfg, err := LoadFromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Tree.Depth())
}

func TestLoadFromBytesTOML(t *testing.T) {
	cfg, err := LoadFromBytesAs([]byte(`
theme = "terminal"

[sync]
indent = 8

[logging]
level = "debug"
`), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "terminal", cfg.Theme)
	assert.Equal(t, 8, cfg.Sync.Indent)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.NotContains(t, cfg.Extensions, "sync")
}

// TestExtensions verifies that unknown top-level keys are captured and decodable.
func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
logging:
  level: warn
  report_caller: true
  file:
    enabled: true
    path: /tmp/jsonview.log
`))
	require.NoError(t, err)
	require.Contains(t, cfg.Extensions, "logging")

	type fileSink struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	}
	var logCfg struct {
		Level        string   `yaml:"level"`
		ReportCaller bool     `yaml:"report_caller"`
		File         fileSink `yaml:"file"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
	assert.Equal(t, fileSink{Enabled: true, Path: "/tmp/jsonview.log"}, logCfg.File)

	var missing struct {
		Value string `yaml:"value"`
	}
	require.NoError(t, cfg.UnmarshalExtension("nothing", &missing))
	assert.Empty(t, missing.Value)
}

func TestLoadFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{name: "bad yaml", data: "theme: [", code: errors.ErrCodeConfigInvalid},
		{name: "schema type", data: "tree:\n  expand_depth: deep\n", code: errors.ErrCodeConfigInvalid},
		{name: "schema enum", data: "theme: neon\n", code: errors.ErrCodeConfigInvalid},
		{name: "indent range", data: "sync:\n  indent: 40\n", code: errors.ErrCodeConfigInvalid},
		{name: "listen address", data: "bridge:\n  listen: nope\n", code: errors.ErrCodeConfigValidation},
		{name: "empty key", data: "keybindings:\n  toggle: [\"\"]\n", code: errors.ErrCodeConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("JSONVIEW_TEST_THEME", "kanagawa")

	assert.Equal(t, "theme: kanagawa", expandEnvVars("theme: ${JSONVIEW_TEST_THEME}"))
	assert.Equal(t, "listen: :9000", expandEnvVars("listen: ${JSONVIEW_TEST_UNSET:-:9000}"))
	assert.Equal(t, "x: ", expandEnvVars("x: ${JSONVIEW_TEST_UNSET}"))
}

func TestFindConfigFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, err := FindConfigFile(nested)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))

	want := writeFile(t, root, "jsonview.toml", "theme = \"gruvbox\"\n")
	got, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want = writeFile(t, root, "a/jsonview.yml", "theme: terminal\n")
	got, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadLayersGlobalUnderProject(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, xdg, "jsonview/jsonview.yml", `
theme: gruvbox
sync:
  indent: 2
keybindings:
  quit: ["q"]
`)

	project := t.TempDir()
	writeFile(t, project, "jsonview.yml", `
theme: terminal
keybindings:
  toggle: ["t"]
`)

	cfg, err := Load(project)
	require.NoError(t, err)

	assert.Equal(t, "terminal", cfg.Theme)
	assert.Equal(t, 2, cfg.Sync.Indent)
	assert.Equal(t, []string{"q"}, cfg.Keybindings["quit"])
	assert.Equal(t, []string{"t"}, cfg.Keybindings["toggle"])
}

func TestLoadOrDefault(t *testing.T) {
	isolate(t)

	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))

	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromReportsPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jsonview.yml", "theme: neon\n")

	_, err := LoadFrom(path)
	require.Error(t, err)

	ve, ok := err.(*errors.ViewError)
	require.True(t, ok)
	assert.Equal(t, path, ve.Details["path"])
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"expand_depth"`)
	assert.Contains(t, s, `"allowed_origins"`)
	assert.Contains(t, s, `"gruvbox"`)
	assert.NotContains(t, s, "Extensions")
}
