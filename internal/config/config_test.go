package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciutil/internal/action"
	"ciutil/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ciutil.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Debug(true))
	assert.False(t, cfg.Debug(false))
	assert.True(t, cfg.OutputIsJSON())
	assert.Equal(t, []string{"linting", "testing"}, cfg.PresetNames())
	assert.Equal(t, "console", cfg.Logging.Encoding)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug_mode: false
output_file: /tmp/gh-out
logging:
  level: debug
roots:
  pattern: "@services"
  engine: re2
  output_is_json: false
  exclude: ["**/*.md"]
patterns:
  services: '^services/([^/]+)/'
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Debug(true))
	assert.Equal(t, "/tmp/gh-out", cfg.OutputFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.Equal(t, "re2", cfg.Roots.Engine)
	assert.False(t, cfg.OutputIsJSON())
	assert.Equal(t, []string{"**/*.md"}, cfg.Roots.Exclude)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, []string{"linting", "services", "testing"}, cfg.PresetNames())

	p, err := cfg.ResolvePattern(cfg.Roots.Pattern)
	require.NoError(t, err)
	assert.Equal(t, `^services/([^/]+)/`, p)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "roots: [not, a, map]"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Roots.Pattern = "@linting"
	cfg.ApplyEnv(action.NewInputs(action.MapLookup(map[string]string{
		"INPUT_PATTERN":        "^(x)/",
		"INPUT_PATHS":          "x/a,x/b",
		"INPUT_OUTPUT_IS_JSON": "false",
		"INPUT_DEBUG_MODE":     "no",
		"INPUT_EXCLUDE":        " docs/** , ,*.md",
		"GITHUB_OUTPUT":        "/runner/out",
		"CIUTIL_LOG_LEVEL":     "warn",
	})))

	assert.Equal(t, "^(x)/", cfg.Roots.Pattern)
	assert.Equal(t, "x/a,x/b", cfg.Roots.Paths)
	assert.False(t, cfg.OutputIsJSON())
	assert.False(t, cfg.Debug(true))
	assert.Equal(t, []string{"docs/**", "*.md"}, cfg.Roots.Exclude)
	assert.Equal(t, "/runner/out", cfg.OutputFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnv_LegacyDebugKey(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(action.NewInputs(action.MapLookup(map[string]string{"INPUT_DEGUG_MODE": "TRUE"})))
	assert.True(t, cfg.Debug(false))
}

func TestApplyEnv_UnrecognizedDebugKeepsDefault(t *testing.T) {
	for _, v := range []string{"", "  ", "maybe"} {
		cfg := Default()
		cfg.ApplyEnv(action.NewInputs(action.MapLookup(map[string]string{"INPUT_DEGUG_MODE": v})))
		assert.Nil(t, cfg.DebugMode, "%q", v)
		assert.False(t, cfg.Debug(false), "%q", v)
		assert.True(t, cfg.Debug(true), "%q", v)
	}
}

func TestApplyEnv_EmptyPatternKeepsFileValue(t *testing.T) {
	cfg := Default()
	cfg.Roots.Pattern = "@testing"
	cfg.ApplyEnv(action.NewInputs(action.MapLookup(map[string]string{"INPUT_PATTERN": ""})))
	assert.Equal(t, "@testing", cfg.Roots.Pattern)
}

func TestResolvePattern(t *testing.T) {
	cfg := Default()

	p, err := cfg.ResolvePattern("^(a)/")
	require.NoError(t, err)
	assert.Equal(t, "^(a)/", p)

	p, err = cfg.ResolvePattern("@linting")
	require.NoError(t, err)
	assert.Equal(t, BuiltinPatterns["linting"], p)

	_, err = cfg.ResolvePattern("@nope")
	var se *model.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.KindConfigurationMissing, se.Kind)
	assert.Contains(t, se.Error(), "linting, testing")
}

func TestDiscover(t *testing.T) {
	path := writeConfig(t, "debug_mode: false\n")

	cfg, err := Discover("", action.NewInputs(action.MapLookup(map[string]string{FileEnv: path})))
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)

	t.Chdir(t.TempDir())
	cfg, err = Discover("", action.NewInputs(action.MapLookup(nil)))
	require.NoError(t, err)
	assert.Empty(t, cfg.Source)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("output_file: here\n"), 0o644))
	cfg, err = Discover("", action.NewInputs(action.MapLookup(nil)))
	require.NoError(t, err)
	assert.Equal(t, "here", cfg.OutputFile)
}
