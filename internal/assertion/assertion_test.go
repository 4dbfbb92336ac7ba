package assertion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciutil/internal/model"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		in   Assertion
		pass bool
	}{
		{"exact match", Assertion{Expected: "hello", Actual: "hello", Mode: ModeExact}, true},
		{"exact trims", Assertion{Expected: " hello", Actual: "hello \n", Mode: ModeExact}, true},
		{"exact differs", Assertion{Expected: "hello", Actual: "world", Mode: ModeExact}, false},
		{"default mode is exact", Assertion{Expected: "a", Actual: "a"}, true},
		{"endswith", Assertion{Expected: "end", Actual: "the-end", Mode: ModeEndsWith}, true},
		{"endswith differs", Assertion{Expected: "fin", Actual: "the-end", Mode: ModeEndsWith}, false},
		{"present", Assertion{Expected: "IGNORED", Actual: "something", Mode: ModePresent}, true},
		{"present empty", Assertion{Expected: "IGNORED", Actual: "", Mode: ModePresent}, false},
		{"absent empty", Assertion{Expected: "IGNORED", Actual: "  ", Mode: ModeAbsent}, true},
		{"absent non-empty", Assertion{Expected: "IGNORED", Actual: "present", Mode: ModeAbsent}, false},
		{"regex plain", Assertion{Expected: "^foo.*bar$", Actual: "foo123bar", Mode: ModeRegex}, true},
		{"regex literal with flags", Assertion{Expected: "/^foo$/i", Actual: "FOO", Mode: ModeRegex}, true},
		{"regex without i is case sensitive", Assertion{Expected: "/^foo$/", Actual: "FOO", Mode: ModeRegex}, false},
		{"regex no match", Assertion{Expected: `^\d+$`, Actual: "12a", Mode: ModeRegex}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.pass, res.Pass)
		})
	}
}

func TestEvaluate_InvalidRegex(t *testing.T) {
	_, err := Evaluate(Assertion{Expected: "/[unterminated", Actual: "anything", Mode: ModeRegex})
	var se *model.StepError
	require.True(t, errors.As(err, &se), "got %T: %v", err, err)
	assert.Equal(t, model.KindInvalidInput, se.Kind)
	assert.Contains(t, se.Error(), "Invalid regex")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" EndsWith ")
	require.NoError(t, err)
	assert.Equal(t, ModeEndsWith, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeExact, m)

	_, err = ParseMode("mystery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown mode")
}

func TestResultLine(t *testing.T) {
	pass := Result{Assertion: Assertion{Name: "T1"}, Pass: true}
	assert.Equal(t, "PASS: T1", pass.Line())

	fail := Result{Assertion: Assertion{Name: "T2", Expected: "foo", Actual: "bar", Mode: ModeExact}}
	assert.Equal(t, "FAIL: T2 (expected 'foo' mode=exact actual='bar')", fail.Line())
}

func TestRecord_Appends(t *testing.T) {
	summary := filepath.Join(t.TempDir(), "nested", "summary.txt")

	require.NoError(t, Record(summary, Result{Assertion: Assertion{Name: "T1"}, Pass: true}))
	require.NoError(t, Record(summary, Result{Assertion: Assertion{Name: "T2"}, Pass: true}))

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	assert.Equal(t, "PASS: T1\nPASS: T2\n", string(data))
}

func TestCompileLiteral(t *testing.T) {
	tests := []struct {
		expr  string
		input string
		match bool
	}{
		{`/x/i`, "X", true},
		{`/x/`, "X", false},
		{`/^b$/m`, "a\nb", true},
		{`/^b$/`, "a\nb", false},
		{`/^b$/gim`, "a\nB", true},
		{`^a/b$`, "a/b", true},
		{`/a/q`, "/a/q", true}, // unknown flag: the whole text is the pattern
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			re, err := CompileLiteral(tt.expr)
			require.NoError(t, err)
			ok, err := re.MatchString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.match, ok)
		})
	}
}
