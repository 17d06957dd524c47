package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonview/config"
)

const defaultThemeName = "kanagawa"

// Colors is the palette a theme is built from. Entries are adaptive
// light/dark pairs, or plain ANSI indexes for the terminal palette.
type Colors struct {
	Green                lipgloss.TerminalColor
	Yellow               lipgloss.TerminalColor
	Red                  lipgloss.TerminalColor
	Orange               lipgloss.TerminalColor
	Cyan                 lipgloss.TerminalColor
	Blue                 lipgloss.TerminalColor
	Violet               lipgloss.TerminalColor
	Text                 lipgloss.TerminalColor
	MutedText            lipgloss.TerminalColor
	DarkText             lipgloss.TerminalColor
	Border               lipgloss.TerminalColor
	SelectedBackground   lipgloss.TerminalColor
	VerySubtleBackground lipgloss.TerminalColor
}

// Theme holds the styles used by the tree view and command output.
type Theme struct {
	Name   string
	Colors Colors

	Title lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Accent   lipgloss.Style

	// JSON tokens
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Boolean     lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
	Summary     lipgloss.Style

	// Search hits. CurrentMatch marks the one under the cursor.
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
}

var palettes = map[string]func() Colors{
	"kanagawa": kanagawa,
	"gruvbox":  gruvbox,
	"terminal": terminal,
}

var paletteAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
	"ansi":            "terminal",
}

// DefaultTheme is the theme selected by JSONVIEW_THEME or the config file.
var DefaultTheme = NewTheme()

// NewTheme builds the theme named by JSONVIEW_THEME, else by the config
// file, else the default.
func NewTheme() *Theme {
	return NewThemeWithName(configuredName())
}

// NewThemeWithName builds a theme from a palette name or alias. Unknown
// names get the default palette.
func NewThemeWithName(name string) *Theme {
	resolved := resolveName(name)
	return build(resolved, palettes[resolved]())
}

func build(name string, c Colors) *Theme {
	fg := func(color lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(color)
	}

	return &Theme{
		Name:   name,
		Colors: c,

		Title: lipgloss.NewStyle().Bold(true).Underline(true),

		Success: fg(c.Green).Bold(true),
		Error:   fg(c.Red).Bold(true),
		Warning: fg(c.Yellow).Bold(true),
		Info:    fg(c.Cyan).Bold(true),

		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Selected: fg(c.Text).Background(c.SelectedBackground),
		Accent:   fg(c.Violet).Bold(true),

		Key:         fg(c.Blue),
		String:      fg(c.Green),
		Number:      fg(c.Orange),
		Boolean:     fg(c.Violet),
		Null:        fg(c.MutedText).Italic(true),
		Punctuation: fg(c.MutedText),
		Summary:     fg(c.MutedText).Italic(true),

		Match:        fg(c.DarkText).Background(c.Yellow),
		CurrentMatch: fg(c.DarkText).Background(c.Orange).Bold(true),
	}
}

func resolveName(name string) string {
	key := normalizeName(name)
	if alias, ok := paletteAliases[key]; ok {
		key = alias
	}
	if _, ok := palettes[key]; ok {
		return key
	}
	return defaultThemeName
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(name)
}

func configuredName() string {
	if name := normalizeName(os.Getenv("JSONVIEW_THEME")); name != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}
	if name := normalizeName(cfg.Theme); name != "" {
		return name
	}
	return defaultThemeName
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// kanagawa pairs the Wave (light) and Dragon (dark) variants.
func kanagawa() Colors {
	return Colors{
		Green:                adaptive("#4E7C5A", "#98BB6C"),
		Yellow:               adaptive("#A68A64", "#FF9E3B"),
		Red:                  adaptive("#C34043", "#FF5D62"),
		Orange:               adaptive("#CC6B4E", "#FFA066"),
		Cyan:                 adaptive("#5B8BBE", "#7E9CD8"),
		Blue:                 adaptive("#4F7CAC", "#7FB4CA"),
		Violet:               adaptive("#674D7A", "#957FB8"),
		Text:                 adaptive("#2B2F42", "#DCD7BA"),
		MutedText:            adaptive("#6C7086", "#727169"),
		DarkText:             adaptive("#E6E9EF", "#1D1C19"),
		Border:               adaptive("#B5BDC5", "#363646"),
		SelectedBackground:   adaptive("#E2E6F3", "#223249"),
		VerySubtleBackground: adaptive("#EFF1F8", "#181820"),
	}
}

func gruvbox() Colors {
	return Colors{
		Green:                adaptive("#98971A", "#B8BB26"),
		Yellow:               adaptive("#D79921", "#FABD2F"),
		Red:                  adaptive("#CC241D", "#FB4934"),
		Orange:               adaptive("#D65D0E", "#FE8019"),
		Cyan:                 adaptive("#458588", "#83A598"),
		Blue:                 adaptive("#076678", "#458588"),
		Violet:               adaptive("#8F3F71", "#B16286"),
		Text:                 adaptive("#3C3836", "#EBDBB2"),
		MutedText:            adaptive("#928374", "#BDAE93"),
		DarkText:             adaptive("#F9F5D7", "#1D2021"),
		Border:               adaptive("#D5C4A1", "#504945"),
		SelectedBackground:   adaptive("#F2E5BC", "#32302F"),
		VerySubtleBackground: adaptive("#F9F5D7", "#1D2021"),
	}
}

// terminal uses ANSI indexes so the user's terminal scheme decides.
func terminal() Colors {
	return Colors{
		Green:                lipgloss.Color("2"),
		Yellow:               lipgloss.Color("3"),
		Red:                  lipgloss.Color("1"),
		Orange:               lipgloss.Color("208"),
		Cyan:                 lipgloss.Color("6"),
		Blue:                 lipgloss.Color("4"),
		Violet:               lipgloss.Color("5"),
		Text:                 lipgloss.Color("7"),
		MutedText:            lipgloss.Color("8"),
		DarkText:             lipgloss.Color("0"),
		Border:               lipgloss.Color("8"),
		SelectedBackground:   lipgloss.Color("8"),
		VerySubtleBackground: lipgloss.Color("0"),
	}
}
