package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/grovetools/jsonview/errors"
)

// ThemeNames are the accepted values of the theme field. An empty value
// selects the default theme.
var ThemeNames = []string{"kanagawa", "gruvbox", "terminal"}

// IconSets are the accepted values of the icons field.
var IconSets = []string{"nerd", "ascii"}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Theme != "" && !contains(ThemeNames, c.Theme) {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("unknown theme '%s' (expected one of %s)", c.Theme, strings.Join(ThemeNames, ", "))).
			WithDetail("field", "theme")
	}

	if c.Icons != "" && !contains(IconSets, c.Icons) {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("unknown icon set '%s' (expected one of %s)", c.Icons, strings.Join(IconSets, ", "))).
			WithDetail("field", "icons")
	}

	if c.Tree.IndentWidth < 1 || c.Tree.IndentWidth > 8 {
		return errors.New(errors.ErrCodeConfigValidation, "tree.indent_width must be between 1 and 8").
			WithDetail("field", "tree.indent_width")
	}

	if c.Sync.Indent < 1 || c.Sync.Indent > 16 {
		return errors.New(errors.ErrCodeConfigValidation, "sync.indent must be between 1 and 16").
			WithDetail("field", "sync.indent")
	}

	if err := validateBridge(&c.Bridge); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid bridge configuration")
	}

	for action, keys := range c.Keybindings {
		if strings.TrimSpace(action) == "" {
			return errors.New(errors.ErrCodeConfigValidation, "keybinding action name cannot be empty")
		}
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				return errors.New(errors.ErrCodeConfigValidation,
					fmt.Sprintf("keybinding '%s' contains an empty key", action)).
					WithDetail("action", action)
			}
		}
	}

	return nil
}

func validateBridge(b *BridgeConfig) error {
	if b.Listen != "" {
		if _, _, err := net.SplitHostPort(b.Listen); err != nil {
			return fmt.Errorf("listen address '%s': %w", b.Listen, err)
		}
	}
	for _, origin := range b.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("allowed_origins cannot contain an empty entry")
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
