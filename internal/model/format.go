package model

import (
	"fmt"
	"strings"
)

// OutputFormat selects how a list of values is written to the output file.
type OutputFormat int

const (
	FormatJSON OutputFormat = iota // ["a","b"]
	FormatCSV                      // a,b
)

func (f OutputFormat) String() string {
	if f == FormatCSV {
		return "csv"
	}
	return "json"
}

// ParseOutputFormat accepts "json" or "csv" (case-insensitive). Empty means JSON.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv", "plain":
		return FormatCSV, nil
	}
	return FormatJSON, fmt.Errorf("unknown output format %q (want json or csv)", s)
}

// FormatFromJSONFlag maps the boolean output_is_json input onto a format.
func FormatFromJSONFlag(outputIsJSON bool) OutputFormat {
	if outputIsJSON {
		return FormatJSON
	}
	return FormatCSV
}
