package model

import "strings"

// PathRecord is a single entry from the paths input, before or after sanitizing.
type PathRecord string

// CaptureKind tells apart the three outcomes of applying a root pattern.
type CaptureKind int

const (
	NoMatch      CaptureKind = iota // pattern did not match
	EmptyCapture                    // matched, but group 1 was empty or did not participate
	Captured                        // matched with a non-empty group 1
)

func (k CaptureKind) String() string {
	switch k {
	case NoMatch:
		return "no-match"
	case EmptyCapture:
		return "empty-capture"
	case Captured:
		return "captured"
	}
	return "unknown"
}

// MarshalText lets CaptureKind appear as a string in JSON responses.
func (k CaptureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RootMatch is the outcome of running the root pattern on one sanitized path.
type RootMatch struct {
	Path      PathRecord  `json:"path"`
	Kind      CaptureKind `json:"kind"`
	Root      string      `json:"root,omitempty"`
	Duplicate bool        `json:"duplicate,omitempty"` // Root was already discovered earlier in the input
	Excluded  bool        `json:"excluded,omitempty"`  // Path was dropped by an exclude glob
}

// Emitted reports whether this match contributed a new root to the result.
func (m RootMatch) Emitted() bool {
	return m.Kind == Captured && !m.Duplicate && !m.Excluded
}

// serializationArtifacts strips the characters left behind when a single-element JSON array
// such as ["a/b/c"] is passed through a comma-separated input.
var serializationArtifacts = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// SanitizePath removes [ ] ' " from every position and trims surrounding whitespace.
func SanitizePath(raw string) PathRecord {
	return PathRecord(strings.TrimSpace(serializationArtifacts.Replace(raw)))
}

// SplitPaths splits a comma-separated paths input, sanitizes each entry and drops empty ones.
func SplitPaths(raw string) []PathRecord {
	out := []PathRecord{}
	for _, part := range strings.Split(raw, ",") {
		if p := SanitizePath(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
