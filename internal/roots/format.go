package roots

import (
	"bytes"
	"encoding/json"
	"strings"

	"ciutil/internal/model"
)

// OutputName is the key written to the output file.
const OutputName = "unique_root_directories"

// Format renders roots as a JSON array of strings or a comma-joined list.
func Format(roots []string, f model.OutputFormat) (string, error) {
	if f == model.FormatCSV {
		return strings.Join(roots, ","), nil
	}
	if roots == nil {
		roots = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(roots); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
