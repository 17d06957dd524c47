// Package keymap holds helpers shared by key maps: config overrides,
// multi-key sequences and help sections.
package keymap

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonview/config"
)

// ApplyOverrides replaces the keys of key.Binding fields in the struct km
// points to. Config actions are snake_case field names (next_match ->
// NextMatch); embedded structs are searched too. The help description of a
// binding is kept. It returns the actions that matched no field, sorted.
//
// Example:
//
//	km := jsontree.DefaultKeyMap()
//	unknown := keymap.ApplyOverrides(&km, cfg.Keybindings)
func ApplyOverrides(km interface{}, overrides config.KeybindingsConfig) []string {
	if len(overrides) == 0 {
		return nil
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}

	used := make(map[string]bool, len(overrides))
	applyOverridesRecursive(v.Elem(), overrides, used)

	var unknown []string
	for action := range overrides {
		if !used[action] {
			unknown = append(unknown, action)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func applyOverridesRecursive(v reflect.Value, overrides config.KeybindingsConfig, used map[string]bool) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides, used)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		action := camelToSnake(fieldType.Name)
		keys, ok := overrides[action]
		if !ok || len(keys) == 0 {
			continue
		}
		used[action] = true

		current := field.Interface().(key.Binding)
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), current.Help().Desc),
		)))
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: NextMatch -> next_match, CopyPath -> copy_path
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
