package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/jsonview/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames lists the file names FindConfigFile looks for, in order.
var configNames = []string{
	"jsonview.yml",
	"jsonview.yaml",
	"jsonview.toml",
	".jsonview.yml",
	".jsonview.yaml",
}

// Format identifies the syntax of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the file format from a path's extension. Anything that is
// not .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadDefault loads the configuration that applies to the current working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to get working directory")
	}
	return Load(cwd)
}

// Load layers the user's global configuration under the nearest project
// configuration found from startDir upward. A missing project file is not an
// error as long as the global file exists; with neither present, the
// returned error has code CONFIG_NOT_FOUND.
func Load(startDir string) (*Config, error) {
	var global *Config
	globalPath := getXDGConfigPath()
	if globalPath != "" {
		if info, err := os.Stat(globalPath); err == nil && !info.IsDir() {
			cfg, err := readFile(globalPath)
			if err != nil {
				return nil, err
			}
			global = cfg
		}
	}

	projectPath, err := findProjectConfig(startDir)
	if err != nil && global == nil {
		return nil, err
	}

	var project *Config
	if projectPath != "" && projectPath != globalPath {
		cfg, err := readFile(projectPath)
		if err != nil {
			return nil, err
		}
		project = cfg
	}

	return finalize(mergeConfigs(global, project))
}

// LoadOrDefault is Load with CONFIG_NOT_FOUND turned into the default configuration.
func LoadOrDefault(startDir string) (*Config, error) {
	cfg, err := Load(startDir)
	if errors.Is(err, errors.ErrCodeConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFrom loads a single configuration file without layering.
func LoadFrom(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// LoadFromBytes parses YAML configuration data, validates it and applies defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	return LoadFromBytesAs(data, FormatYAML)
}

// LoadFromBytesAs is LoadFromBytes for an explicit format.
func LoadFromBytesAs(data []byte, format Format) (*Config, error) {
	cfg, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := decode(data, FormatFor(path))
	if err != nil {
		if ve, ok := err.(*errors.ViewError); ok {
			return nil, ve.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// decode expands environment variables, checks the document against the
// JSON Schema and unmarshals it.
func decode(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var raw map[string]interface{}
	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		cfg.Extensions = extensionsFrom(raw)
	default:
		if err := yaml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	if raw == nil {
		raw = map[string]interface{}{}
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	return &cfg, nil
}

func finalize(cfg *Config) (*Config, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extensionsFrom returns the top-level keys that are not Config fields.
func extensionsFrom(raw map[string]interface{}) map[string]interface{} {
	known := knownKeys()
	var ext map[string]interface{}
	for k, v := range raw {
		if known[k] {
			continue
		}
		if ext == nil {
			ext = make(map[string]interface{})
		}
		ext[k] = v
	}
	return ext
}

func knownKeys() map[string]bool {
	return map[string]bool{
		"version":     true,
		"theme":       true,
		"icons":       true,
		"tree":        true,
		"search":      true,
		"sync":        true,
		"bridge":      true,
		"keybindings": true,
	}
}

// FindConfigFile searches for a jsonview configuration file with the following precedence:
// 1. startDir up to the filesystem root
// 2. XDG config directory (~/.config/jsonview/)
func FindConfigFile(startDir string) (string, error) {
	if path, err := findProjectConfig(startDir); err == nil {
		return path, nil
	}

	if xdgConfigPath := getXDGConfigPath(); xdgConfigPath != "" {
		dir := filepath.Dir(xdgConfigPath)
		for _, name := range []string{"jsonview.yml", "jsonview.yaml", "jsonview.toml"} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", errors.ConfigNotFound(startDir)
}

func findProjectConfig(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.ConfigNotFound(startDir)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} references.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global configuration file path.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "jsonview", "jsonview.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "jsonview", "jsonview.yml")
	}

	return ""
}
