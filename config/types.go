package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Default values applied by SetDefaults.
const (
	DefaultVersion     = "1.0"
	DefaultExpandDepth = -1
	DefaultIndentWidth = 2
	DefaultSyncIndent  = 4
)

// TreeConfig controls how documents are laid out in the tree view.
type TreeConfig struct {
	ExpandDepth *int `yaml:"expand_depth,omitempty" toml:"expand_depth,omitempty" jsonschema:"description=Initial expand depth after a document loads (negative expands everything)"`
	IndentWidth int  `yaml:"indent_width,omitempty" toml:"indent_width,omitempty" jsonschema:"description=Columns of indentation per nesting level,minimum=1,maximum=8"`
}

// Depth returns the configured expand depth, or DefaultExpandDepth when unset.
func (t TreeConfig) Depth() int {
	if t.ExpandDepth == nil {
		return DefaultExpandDepth
	}
	return *t.ExpandDepth
}

// SearchConfig controls the search bar.
type SearchConfig struct {
	JumpToFirst *bool `yaml:"jump_to_first,omitempty" toml:"jump_to_first,omitempty" jsonschema:"description=Move to the first match when a query is submitted (default: true)"`
	RestoreLast bool  `yaml:"restore_last,omitempty" toml:"restore_last,omitempty" jsonschema:"description=Restore the last query from .jsonview/state.yml on startup"`
}

// Jump reports whether the view should jump to the first match.
func (s SearchConfig) Jump() bool {
	return s.JumpToFirst == nil || *s.JumpToFirst
}

// SyncConfig controls how the edited tree is written back into the input text.
type SyncConfig struct {
	Indent int `yaml:"indent,omitempty" toml:"indent,omitempty" jsonschema:"description=Indent width used when syncing the tree back to the input,minimum=1,maximum=16"`
}

// BridgeConfig configures the websocket host bridge.
type BridgeConfig struct {
	Listen         string   `yaml:"listen,omitempty" toml:"listen,omitempty" jsonschema:"description=Address to accept host messages on (e.g. 127.0.0.1:7007); empty disables the bridge"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" toml:"allowed_origins,omitempty" jsonschema:"description=Origins allowed to open a websocket; '*' allows any"`
}

// KeybindingsConfig maps tree view actions (e.g. "toggle", "search") to key combinations.
type KeybindingsConfig map[string][]string

// Config is the jsonview configuration file.
type Config struct {
	Version     string            `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Theme       string            `yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Color theme,enum=kanagawa,enum=gruvbox,enum=terminal"`
	Icons       string            `yaml:"icons,omitempty" toml:"icons,omitempty" jsonschema:"description=Icon set,enum=nerd,enum=ascii"`
	Tree        TreeConfig        `yaml:"tree,omitempty" toml:"tree,omitempty" jsonschema:"description=Tree view layout"`
	Search      SearchConfig      `yaml:"search,omitempty" toml:"search,omitempty" jsonschema:"description=Search behaviour"`
	Sync        SyncConfig        `yaml:"sync,omitempty" toml:"sync,omitempty" jsonschema:"description=Sync-to-input behaviour"`
	Bridge      BridgeConfig      `yaml:"bridge,omitempty" toml:"bridge,omitempty" jsonschema:"description=Host bridge (websocket) settings"`
	Keybindings KeybindingsConfig `yaml:"keybindings,omitempty" toml:"keybindings,omitempty" jsonschema:"description=Key overrides per tree action"`

	// Extensions captures all other top-level keys (e.g. logging).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Tree.ExpandDepth == nil {
		depth := DefaultExpandDepth
		c.Tree.ExpandDepth = &depth
	}
	if c.Tree.IndentWidth == 0 {
		c.Tree.IndentWidth = DefaultIndentWidth
	}
	if c.Search.JumpToFirst == nil {
		jump := true
		c.Search.JumpToFirst = &jump
	}
	if c.Sync.Indent == 0 {
		c.Sync.Indent = DefaultSyncIndent
	}
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer. A missing key leaves
// the target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// YAML renders the configuration the way it would appear in jsonview.yml.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
