// Package relpath computes how many directory levels separate a nested project file from a root file.
package relpath

import (
	"path"
	"path/filepath"
	"strings"

	"ciutil/internal/model"
)

const (
	RootInput   = "INPUT_ROOT_FILE"
	SubdirInput = "INPUT_SUBDIRECTORY_FILE"
	OutputName  = "relative_path"
)

// ToPosix sanitizes p like a paths entry and converts backslashes to forward slashes.
func ToPosix(p string) string {
	return strings.ReplaceAll(string(model.SanitizePath(p)), `\`, "/")
}

// Compute returns "..<sep>" repeated once per level the root file's directory sits above the
// subdirectory file's directory, e.g. "../../". It returns "" when the root is not above.
// An empty sep uses the platform separator.
func Compute(rootFile, subdirectoryFile, sep string) (string, error) {
	if sep == "" {
		sep = string(filepath.Separator)
	}
	root := ToPosix(rootFile)
	sub := ToPosix(subdirectoryFile)
	if root == "" || sub == "" {
		return "", &model.StepError{
			Kind:    model.KindConfigurationMissing,
			Message: "Both " + RootInput + " and " + SubdirInput + " are required",
		}
	}
	if strings.Contains(root, ",") {
		return "", commaError(RootInput)
	}
	if strings.Contains(sub, ",") {
		return "", commaError(SubdirInput)
	}

	ups := Levels(path.Dir(sub), path.Dir(root))
	if ups <= 0 {
		return "", nil
	}
	return strings.Repeat(".."+sep, ups), nil
}

// Levels counts the ".." segments of the relative path from dir `from` to dir `to`.
func Levels(from, to string) int {
	fromSegs := segments(from)
	toSegs := segments(to)
	common := 0
	for common < len(fromSegs) && common < len(toSegs) && fromSegs[common] == toSegs[common] {
		common++
	}
	return len(fromSegs) - common
}

func segments(dir string) []string {
	dir = path.Clean(dir)
	if dir == "." {
		return nil
	}
	abs := strings.HasPrefix(dir, "/")
	trimmed := strings.Trim(dir, "/")
	if trimmed == "" {
		return []string{"/"}
	}
	parts := strings.Split(trimmed, "/")
	if abs {
		parts = append([]string{"/"}, parts...)
	}
	return parts
}

func commaError(input string) *model.StepError {
	return &model.StepError{
		Kind:    model.KindInvalidInput,
		Input:   input,
		Message: input + " contains a comma, which is not allowed",
	}
}
