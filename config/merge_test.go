package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func TestMergeConfigs(t *testing.T) {
	base := &Config{
		Theme:       "gruvbox",
		Tree:        TreeConfig{ExpandDepth: intPtr(2), IndentWidth: 4},
		Search:      SearchConfig{JumpToFirst: boolPtr(false)},
		Bridge:      BridgeConfig{Listen: ":7007", AllowedOrigins: []string{"http://a"}},
		Keybindings: KeybindingsConfig{"quit": {"q"}},
		Extensions:  map[string]interface{}{"logging": map[string]interface{}{"level": "info"}},
	}
	override := &Config{
		Tree:        TreeConfig{ExpandDepth: intPtr(0)},
		Search:      SearchConfig{RestoreLast: true},
		Keybindings: KeybindingsConfig{"quit": {"ctrl+c"}, "toggle": {"t"}},
	}

	merged := mergeConfigs(base, override)

	assert.Equal(t, "gruvbox", merged.Theme)
	assert.Equal(t, 0, merged.Tree.Depth())
	assert.Equal(t, 4, merged.Tree.IndentWidth)
	assert.False(t, merged.Search.Jump())
	assert.True(t, merged.Search.RestoreLast)
	assert.Equal(t, ":7007", merged.Bridge.Listen)
	assert.Equal(t, []string{"ctrl+c"}, merged.Keybindings["quit"])
	assert.Equal(t, []string{"t"}, merged.Keybindings["toggle"])
	assert.Contains(t, merged.Extensions, "logging")

	// base is untouched
	assert.Equal(t, 2, base.Tree.Depth())
	assert.Equal(t, []string{"q"}, base.Keybindings["quit"])
}

func TestMergeConfigsNil(t *testing.T) {
	cfg := &Config{Theme: "terminal"}
	assert.Same(t, cfg, mergeConfigs(nil, cfg))
	assert.Same(t, cfg, mergeConfigs(cfg, nil))
	assert.Nil(t, mergeConfigs(nil, nil))
}
