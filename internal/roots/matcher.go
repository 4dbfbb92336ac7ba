package roots

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"ciutil/internal/model"
)

// Engine selects the regular expression dialect used for root patterns.
type Engine int

const (
	// EngineECMAScript matches the dialect of the JavaScript steps the patterns were written for.
	EngineECMAScript Engine = iota
	// EngineRE2 uses Go's regexp package (no backreferences or lookaround).
	EngineRE2
)

func (e Engine) String() string {
	if e == EngineRE2 {
		return "re2"
	}
	return "ecmascript"
}

// ParseEngine accepts "ecmascript" (also "js", "") or "re2" (also "go").
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ecmascript", "js", "javascript":
		return EngineECMAScript, nil
	case "re2", "go":
		return EngineRE2, nil
	}
	return EngineECMAScript, fmt.Errorf("unknown regex engine %q (want ecmascript or re2)", s)
}

// matchTimeout bounds a single backtracking match in the ECMAScript engine.
const matchTimeout = 2 * time.Second

// matcher applies a compiled pattern with first-match, non-global semantics and reports group 1.
type matcher interface {
	firstGroup(s string) (model.CaptureKind, string, error)
}

func compile(pattern string, engine Engine) (matcher, error) {
	if engine == EngineRE2 {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		return re2Matcher{re: re}, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout
	return ecmaMatcher{re: re}, nil
}

type ecmaMatcher struct {
	re *regexp2.Regexp
}

func (m ecmaMatcher) firstGroup(s string) (model.CaptureKind, string, error) {
	match, err := m.re.FindStringMatch(s)
	if err != nil {
		return model.NoMatch, "", err
	}
	if match == nil {
		return model.NoMatch, "", nil
	}
	g := match.GroupByNumber(1)
	if g == nil || len(g.Captures) == 0 || g.String() == "" {
		return model.EmptyCapture, "", nil
	}
	return model.Captured, g.String(), nil
}

type re2Matcher struct {
	re *regexp.Regexp
}

func (m re2Matcher) firstGroup(s string) (model.CaptureKind, string, error) {
	idx := m.re.FindStringSubmatchIndex(s)
	if idx == nil {
		return model.NoMatch, "", nil
	}
	if len(idx) < 4 || idx[2] < 0 || idx[2] == idx[3] {
		return model.EmptyCapture, "", nil
	}
	return model.Captured, s[idx[2]:idx[3]], nil
}
