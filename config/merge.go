package config

// mergeConfigs layers override on top of base. Scalar fields in override win
// when set; keybinding and extension maps are merged key by key.
func mergeConfigs(base, override *Config) *Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Icons != "" {
		result.Icons = override.Icons
	}

	result.Tree = mergeTree(base.Tree, override.Tree)
	result.Search = mergeSearch(base.Search, override.Search)

	if override.Sync.Indent != 0 {
		result.Sync.Indent = override.Sync.Indent
	}

	if override.Bridge.Listen != "" {
		result.Bridge.Listen = override.Bridge.Listen
	}
	if len(override.Bridge.AllowedOrigins) > 0 {
		result.Bridge.AllowedOrigins = append([]string(nil), override.Bridge.AllowedOrigins...)
	}

	if len(base.Keybindings) > 0 || len(override.Keybindings) > 0 {
		result.Keybindings = make(KeybindingsConfig, len(base.Keybindings)+len(override.Keybindings))
		for action, keys := range base.Keybindings {
			result.Keybindings[action] = keys
		}
		for action, keys := range override.Keybindings {
			result.Keybindings[action] = keys
		}
	}

	if len(base.Extensions) > 0 || len(override.Extensions) > 0 {
		result.Extensions = make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			result.Extensions[k] = v
		}
		for k, v := range override.Extensions {
			result.Extensions[k] = v
		}
	}

	return &result
}

func mergeTree(base, override TreeConfig) TreeConfig {
	result := base
	if override.ExpandDepth != nil {
		depth := *override.ExpandDepth
		result.ExpandDepth = &depth
	}
	if override.IndentWidth != 0 {
		result.IndentWidth = override.IndentWidth
	}
	return result
}

func mergeSearch(base, override SearchConfig) SearchConfig {
	result := base
	if override.JumpToFirst != nil {
		jump := *override.JumpToFirst
		result.JumpToFirst = &jump
	}
	if override.RestoreLast {
		result.RestoreLast = true
	}
	return result
}
