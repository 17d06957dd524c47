package theme

import (
	"os"

	"github.com/grovetools/jsonview/config"
)

type iconSet struct {
	success, fail, warning, info string
	expanded, collapsed          string
	search, edit                 string
}

var nerdIcons = iconSet{
	success:   "󰄬", // md-check
	fail:      "", // cod-error
	warning:   "", // fa-warning
	info:      "󰋼", // md-information
	expanded:  "󰅀", // md-chevron_down
	collapsed: "󰅂", // md-chevron_right
	search:    "", // fa-search
	edit:      "󰏫", // md-pencil
}

var asciiIcons = iconSet{
	success:   "✓",
	fail:      "✗",
	warning:   "!",
	info:      "i",
	expanded:  "▼",
	collapsed: "▶",
	search:    "/",
	edit:      "✎",
}

// Glyphs used in status lines and the tree gutter. Set at init from
// JSONVIEW_ICONS or the config file's icons field.
var (
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconExpanded  string
	IconCollapsed string
	IconSearch    string
	IconEdit      string
)

func init() {
	useIcons(selectIcons(os.Getenv("JSONVIEW_ICONS")))
}

func selectIcons(env string) iconSet {
	if env == "" {
		if cfg, err := config.LoadDefault(); err == nil && cfg != nil {
			env = cfg.Icons
		}
	}
	if normalizeName(env) == "ascii" {
		return asciiIcons
	}
	return nerdIcons
}

func useIcons(s iconSet) {
	IconSuccess, IconError, IconWarning, IconInfo = s.success, s.fail, s.warning, s.info
	IconExpanded, IconCollapsed = s.expanded, s.collapsed
	IconSearch, IconEdit = s.search, s.edit
}
