package model

// Centralized icons for the report, TUI and log lines.
// Using simple single-width characters for consistent terminal rendering
const (
	IconSearch    = "🔍"
	IconDone      = "✅"
	IconWarn      = "⚠️"
	IconNew       = "◆" // Diamond for the first occurrence of a root
	IconDuplicate = "≈" // Almost equal (root already seen)
	IconEmpty     = "∅" // Matched, but capture group 1 was empty
	IconMissing   = "✗" // Thin X (no match)
	IconExcluded  = "-" // Dropped by an exclude glob
)

// Version is the ciutil release reported by `ciutil version`.
const Version = "0.3.0"
