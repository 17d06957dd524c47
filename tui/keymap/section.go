package keymap

import "github.com/charmbracelet/bubbles/key"

// Section names used by the tree view help.
const (
	SectionNavigation = "Navigation"
	SectionFold       = "Fold"
	SectionSearch     = "Search"
	SectionEdit       = "Edit"
	SectionClipboard  = "Clipboard"
	SectionSystem     = "System"
)

// Section is a named group of bindings shown as one help column.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// NewSection creates a section.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

// Enabled returns the section's enabled bindings.
func (s Section) Enabled() []key.Binding {
	var result []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			result = append(result, b)
		}
	}
	return result
}

// FullHelp turns sections into help.Model columns, skipping empty ones.
func FullHelp(sections ...Section) [][]key.Binding {
	var columns [][]key.Binding
	for _, s := range sections {
		if enabled := s.Enabled(); len(enabled) > 0 {
			columns = append(columns, enabled)
		}
	}
	return columns
}
