// Package tui holds terminal setup shared by jsonview's interactive commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/tui/theme"
)

// InitializeTUI forces a true-color profile when CLICOLOR_FORCE=1 or
// COLORTERM=truecolor is set, so colors survive pipes and recorders. It then
// selects the theme named by cfg, if any.
func InitializeTUI(cfg *config.Config) {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	if cfg != nil && cfg.Theme != "" && os.Getenv("JSONVIEW_THEME") == "" {
		theme.DefaultTheme = theme.NewThemeWithName(cfg.Theme)
	}
}
