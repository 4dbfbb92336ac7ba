// Package align validates four parallel credential lists and trims them to a consistent record set.
package align

import (
	"strconv"
	"strings"

	"ciutil/internal/model"
)

// Output keys written by the align step, in emission order.
const (
	OutputCount     = "count"
	OutputNames     = "names"
	OutputUsernames = "usernames"
	OutputPasswords = "passwords"
	OutputURLs      = "urls"
)

// Tracer receives debug lines while aligning. A nil Tracer is ignored.
type Tracer func(msg string)

// Align computes the aligned record set for the four raw lists.
//
// A blank raw list, or no non-empty entry common to usernames, passwords and urls, yields the zero
// record. Leading blanks in the names list shift the usernames/passwords/urls selection towards the
// end of their windows so the remaining names line up with the later entries.
func Align(in model.CredentialLists, trace Tracer) model.AlignedCredentials {
	if trace == nil {
		trace = func(string) {}
	}
	if isBlank(in.Names) || isBlank(in.Usernames) || isBlank(in.Passwords) || isBlank(in.URLs) {
		trace("One or more required inputs missing; emitting empty outputs.")
		return model.ZeroCredentials()
	}

	namesAll := SplitKeepEmpty(in.Names)
	usersAll := SplitKeepEmpty(in.Usernames)
	pwdsAll := SplitKeepEmpty(in.Passwords)
	urlsAll := SplitKeepEmpty(in.URLs)
	trace("Parsed names=" + quoteAll(namesAll))
	trace("Parsed usernames=" + quoteAll(usersAll))
	trace("Parsed urls=" + quoteAll(urlsAll))

	usersNZ := nonEmpty(usersAll)
	pwdsNZ := nonEmpty(pwdsAll)
	urlsNZ := nonEmpty(urlsAll)

	common := min(len(usersNZ), len(pwdsNZ), len(urlsNZ))
	if common <= 0 {
		trace("No usable non-name entries after filtering empties; emitting empty outputs.")
		return model.ZeroCredentials()
	}
	usersWin := usersNZ[:common]
	pwdsWin := pwdsNZ[:common]
	urlsWin := urlsNZ[:common]

	leading := LeadingEmpty(namesAll)
	namesNZ := nonEmpty(namesAll)
	count := min(len(namesNZ), max(0, common-leading))
	trace("commonNonName=" + strconv.Itoa(common) + " leadingEmpty=" + strconv.Itoa(leading) + " count=" + strconv.Itoa(count))

	out := model.AlignedCredentials{
		Count: count,
		Names: clone(namesNZ[:count]),
	}
	if count < common {
		out.Usernames = clone(usersWin[common-count:])
		out.Passwords = clone(pwdsWin[common-count:])
		out.URLs = clone(urlsWin[common-count:])
	} else {
		out.Usernames = clone(usersWin)
		out.Passwords = clone(pwdsWin)
		out.URLs = clone(urlsWin)
	}
	return out
}

// Output is a single name=value pair destined for the output file.
type Output struct {
	Name  string
	Value string
}

// Outputs renders the five output lines of the align step.
func Outputs(a model.AlignedCredentials) []Output {
	return []Output{
		{OutputCount, strconv.Itoa(a.Count)},
		{OutputNames, strings.Join(a.Names, ",")},
		{OutputUsernames, strings.Join(a.Usernames, ",")},
		{OutputPasswords, strings.Join(a.Passwords, ",")},
		{OutputURLs, strings.Join(a.URLs, ",")},
	}
}

// Summary is the human-readable line logged after a successful run.
func Summary(a model.AlignedCredentials) string {
	return "Validated " + strconv.Itoa(a.Count) + " source(s)."
}

// SplitKeepEmpty splits s on commas and trims each segment, keeping empty segments.
func SplitKeepEmpty(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// LeadingEmpty counts the consecutive empty entries before the first non-empty one.
func LeadingEmpty(list []string) int {
	n := 0
	for _, v := range list {
		if v != "" {
			break
		}
		n++
	}
	return n
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func quoteAll(list []string) string {
	q := make([]string, len(list))
	for i, v := range list {
		q[i] = "'" + v + "'"
	}
	return "[" + strings.Join(q, ", ") + "]"
}
