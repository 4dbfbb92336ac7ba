// Package config layers built-in defaults, an optional YAML file and the runner environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ciutil/internal/action"
	"ciutil/internal/model"
)

const (
	// FileEnv points at a YAML config file.
	FileEnv = "CIUTIL_CONFIG"
	// DefaultFile is read from the working directory when FileEnv is not set.
	DefaultFile = ".ciutil.yaml"
	// PresetPrefix marks a pattern input that names a preset, e.g. "@linting".
	PresetPrefix = "@"
)

// BuiltinPatterns are the root patterns the workflows ship with.
var BuiltinPatterns = map[string]string{
	"linting": `^([^/.]+)\/`,
	"testing": `^([^\/]+)\/(src|tests?)\/.*\.(cs|csproj|sln)$`,
}

type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
}

type RootsConfig struct {
	Pattern      string   `yaml:"pattern"`
	Paths        string   `yaml:"paths"`
	Engine       string   `yaml:"engine"`
	OutputIsJSON *bool    `yaml:"output_is_json"`
	Exclude      []string `yaml:"exclude"`
}

// Config holds every setting that can come from a file or the environment.
// Pointer fields stay nil until something sets them so each step can apply its own default.
type Config struct {
	DebugMode  *bool             `yaml:"debug_mode"`
	OutputFile string            `yaml:"output_file"`
	Logging    LoggingConfig     `yaml:"logging"`
	Roots      RootsConfig       `yaml:"roots"`
	Patterns   map[string]string `yaml:"patterns"`
	Source     string            `yaml:"-"` // file the config was read from, if any
}

// Default returns a config with the built-in presets and console logging.
func Default() *Config {
	patterns := make(map[string]string, len(BuiltinPatterns))
	for k, v := range BuiltinPatterns {
		patterns[k] = v
	}
	return &Config{
		Logging:  LoggingConfig{Level: "info", Encoding: "console"},
		Patterns: patterns,
	}
}

// Load reads path over the defaults. Presets in the file extend the built-in ones.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Patterns == nil {
		cfg.Patterns = map[string]string{}
	}
	for k, v := range BuiltinPatterns {
		if _, ok := cfg.Patterns[k]; !ok {
			cfg.Patterns[k] = v
		}
	}
	cfg.Source = path
	return cfg, nil
}

// Discover loads explicit, then $CIUTIL_CONFIG, then ./.ciutil.yaml if it exists, else the defaults.
func Discover(explicit string, in *action.Inputs) (*Config, error) {
	path := explicit
	if path == "" {
		path = in.Env(FileEnv)
	}
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", DefaultFile, err)
	}
	return Default(), nil
}

// ApplyEnv overrides file values with INPUT_* variables and GITHUB_OUTPUT.
func (c *Config) ApplyEnv(in *action.Inputs) {
	// degug_mode is the key the credential workflow has always sent
	// Blank or unrecognized values leave the step's own default in place.
	if v, ok := in.First("debug_mode", "degug_mode"); ok {
		if b, ok := action.ParseBoolOK(v); ok {
			c.DebugMode = &b
		}
	}
	if v := in.Env(action.OutputFileEnv); v != "" {
		c.OutputFile = v
	}
	if v := in.Env("CIUTIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v, ok := in.Lookup("pattern"); ok && v != "" {
		c.Roots.Pattern = v
	}
	if v, ok := in.Lookup("paths"); ok {
		c.Roots.Paths = v
	}
	if v, ok := in.Lookup("engine"); ok && v != "" {
		c.Roots.Engine = v
	}
	if v, ok := in.Lookup("output_is_json"); ok {
		if b, ok := action.ParseBoolOK(v); ok {
			c.Roots.OutputIsJSON = &b
		}
	}
	if v, ok := in.Lookup("exclude"); ok {
		c.Roots.Exclude = splitList(v)
	}
}

// Debug returns the debug mode, or def when nothing set it.
func (c *Config) Debug(def bool) bool {
	if c.DebugMode == nil {
		return def
	}
	return *c.DebugMode
}

// OutputIsJSON defaults to true.
func (c *Config) OutputIsJSON() bool {
	if c.Roots.OutputIsJSON == nil {
		return true
	}
	return *c.Roots.OutputIsJSON
}

// ResolvePattern expands "@name" to the named preset and returns other patterns unchanged.
func (c *Config) ResolvePattern(pattern string) (string, error) {
	if !strings.HasPrefix(pattern, PresetPrefix) {
		return pattern, nil
	}
	name := strings.TrimPrefix(pattern, PresetPrefix)
	if p, ok := c.Patterns[name]; ok {
		return p, nil
	}
	return "", &model.StepError{
		Kind:    model.KindConfigurationMissing,
		Input:   "INPUT_PATTERN",
		Message: fmt.Sprintf("unknown pattern preset %q (known: %s)", name, strings.Join(c.PresetNames(), ", ")),
	}
}

// PresetNames lists the preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Patterns))
	for k := range c.Patterns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
