// Package roots extracts unique root identifiers from path lists using a capture-group pattern.
package roots

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"ciutil/internal/model"
)

// PatternInput is the input name reported when the pattern is missing or invalid.
const PatternInput = "INPUT_PATTERN"

type options struct {
	engine     Engine
	exclude    []string
	onDiscover func(root string)
	onTrace    func(m model.RootMatch)
}

// Option configures an Extractor.
type Option func(*options)

// WithEngine selects the regex dialect. The default is EngineECMAScript.
func WithEngine(e Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithExclude drops sanitized paths matching any of the doublestar globs before matching.
func WithExclude(globs ...string) Option {
	return func(o *options) { o.exclude = append(o.exclude, globs...) }
}

// OnDiscover is called once per unique root, in order of first discovery.
func OnDiscover(fn func(root string)) Option {
	return func(o *options) { o.onDiscover = fn }
}

// OnTrace is called for every sanitized path with its match outcome.
func OnTrace(fn func(m model.RootMatch)) Option {
	return func(o *options) { o.onTrace = fn }
}

// Extractor holds a compiled root pattern. It keeps no state between calls.
type Extractor struct {
	pattern string
	m       matcher
	opts    options
}

// New compiles pattern once. A blank pattern is CONFIGURATION_MISSING, a pattern that does not
// compile is INVALID_PATTERN.
func New(pattern string, opts ...Option) (*Extractor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if pattern == "" {
		return nil, model.Missing(PatternInput)
	}
	for _, g := range o.exclude {
		if !doublestar.ValidatePattern(g) {
			return nil, &model.StepError{
				Kind:    model.KindInvalidInput,
				Input:   "INPUT_EXCLUDE",
				Message: fmt.Sprintf("Invalid exclude glob %q", g),
			}
		}
	}
	m, err := compile(pattern, o.engine)
	if err != nil {
		return nil, &model.StepError{
			Kind:    model.KindInvalidPattern,
			Input:   PatternInput,
			Message: fmt.Sprintf("Invalid regex %q", pattern),
			Cause:   err,
		}
	}
	return &Extractor{pattern: pattern, m: m, opts: o}, nil
}

// Pattern returns the pattern as given to New.
func (e *Extractor) Pattern() string { return e.pattern }

// Engine returns the regex dialect the pattern was compiled with.
func (e *Extractor) Engine() Engine { return e.opts.engine }

// Explain sanitizes every path and returns its match outcome, in input order.
// Paths that sanitize to an empty string are dropped.
func (e *Extractor) Explain(paths []string) ([]model.RootMatch, error) {
	_, matches, err := e.scan(paths)
	return matches, err
}

// Extract returns the unique roots in order of first occurrence. The result is never nil.
func (e *Extractor) Extract(paths []string) ([]string, error) {
	set, _, err := e.scan(paths)
	if err != nil {
		return nil, err
	}
	return set.Roots(), nil
}

func (e *Extractor) scan(paths []string) (*RootSet, []model.RootMatch, error) {
	set := NewRootSet()
	matches := make([]model.RootMatch, 0, len(paths))
	for _, raw := range paths {
		p := model.SanitizePath(raw)
		if p == "" {
			continue
		}
		rm := model.RootMatch{Path: p}
		if e.excluded(string(p)) {
			rm.Excluded = true
		} else {
			kind, root, err := e.m.firstGroup(string(p))
			if err != nil {
				return nil, nil, &model.StepError{
					Kind:    model.KindInvalidPattern,
					Input:   PatternInput,
					Message: fmt.Sprintf("Matching %q against %q failed", e.pattern, p),
					Cause:   err,
				}
			}
			rm.Kind = kind
			if kind == model.Captured {
				rm.Root = root
				if set.Add(root) {
					if e.opts.onDiscover != nil {
						e.opts.onDiscover(root)
					}
				} else {
					rm.Duplicate = true
				}
			}
		}
		if e.opts.onTrace != nil {
			e.opts.onTrace(rm)
		}
		matches = append(matches, rm)
	}
	return set, matches, nil
}

func (e *Extractor) excluded(p string) bool {
	for _, g := range e.opts.exclude {
		// patterns were validated in New
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
	}
	return false
}

// ExtractUniqueRoots compiles pattern and extracts the unique roots of paths in one call.
func ExtractUniqueRoots(paths []string, pattern string, opts ...Option) ([]string, error) {
	e, err := New(pattern, opts...)
	if err != nil {
		return nil, err
	}
	return e.Extract(paths)
}
