// Package assertion implements the string assertions used by workflow self-tests.
package assertion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"

	"ciutil/internal/model"
)

// Mode selects how Actual is compared with Expected.
type Mode string

const (
	ModeExact    Mode = "exact"    // trimmed equality
	ModeEndsWith Mode = "endswith" // trimmed suffix
	ModePresent  Mode = "present"  // actual is non-empty
	ModeAbsent   Mode = "absent"   // actual is empty
	ModeRegex    Mode = "regex"    // expected is a pattern, optionally /pattern/flags
)

// ParseMode lower-cases s; an empty mode is ModeExact.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return ModeExact, nil
	case ModeExact, ModeEndsWith, ModePresent, ModeAbsent, ModeRegex:
		return m, nil
	}
	return "", &model.StepError{
		Kind:    model.KindInvalidInput,
		Input:   "INPUT_MODE",
		Message: fmt.Sprintf("Unknown mode '%s'", s),
	}
}

// Assertion is a single named check.
type Assertion struct {
	Name     string
	Expected string
	Actual   string
	Mode     Mode
}

// Result pairs an assertion with its outcome.
type Result struct {
	Assertion
	Pass bool
}

// Line is the summary-file line for r.
func (r Result) Line() string {
	if r.Pass {
		return "PASS: " + r.Name
	}
	return fmt.Sprintf("FAIL: %s (expected '%s' mode=%s actual='%s')", r.Name, r.Expected, r.Mode, r.Actual)
}

// Evaluate runs the assertion. Only an invalid regex or unknown mode returns an error.
func Evaluate(a Assertion) (Result, error) {
	actual := strings.TrimSpace(a.Actual)
	expected := strings.TrimSpace(a.Expected)
	res := Result{Assertion: a}
	switch a.Mode {
	case ModeExact, "":
		res.Mode = ModeExact
		res.Pass = actual == expected
	case ModeEndsWith:
		res.Pass = strings.HasSuffix(actual, expected)
	case ModePresent:
		res.Pass = actual != ""
	case ModeAbsent:
		res.Pass = actual == ""
	case ModeRegex:
		re, err := CompileLiteral(a.Expected)
		if err != nil {
			return res, &model.StepError{
				Kind:    model.KindInvalidInput,
				Input:   "INPUT_EXPECTED",
				Message: fmt.Sprintf("Invalid regex '%s'", a.Expected),
				Cause:   err,
			}
		}
		ok, err := re.MatchString(a.Actual)
		if err != nil {
			return res, err
		}
		res.Pass = ok
	default:
		_, err := ParseMode(string(a.Mode))
		return res, err
	}
	return res, nil
}

// CompileLiteral compiles either a bare pattern or a /pattern/flags literal. The i and m flags are
// honored; g, u and y have no effect on a single test.
func CompileLiteral(expr string) (*regexp2.Regexp, error) {
	pattern := expr
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.HasPrefix(expr, "/") {
		if end := strings.LastIndex(expr, "/"); end > 0 {
			flags := expr[end+1:]
			if strings.Trim(flags, "gimuy") == "" {
				pattern = expr[1:end]
				if strings.Contains(flags, "i") {
					opts |= regexp2.IgnoreCase
				}
				if strings.Contains(flags, "m") {
					opts |= regexp2.Multiline
				}
			}
		}
	}
	return regexp2.Compile(pattern, opts)
}

// Record appends r's summary line to summaryFile, creating parent directories as needed.
func Record(summaryFile string, r Result) error {
	if dir := filepath.Dir(summaryFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create summary directory: %w", err)
		}
	}
	f, err := os.OpenFile(summaryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open summary file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, r.Line()); err != nil {
		return fmt.Errorf("write summary file: %w", err)
	}
	return nil
}
