// Package action is the boundary between the steps and the workflow runner: INPUT_* environment
// variables in, name=value lines in the GITHUB_OUTPUT file out.
package action

import (
	"os"
	"strings"

	"ciutil/internal/model"
)

// OutputFileEnv names the variable holding the path of the runner's output file.
const OutputFileEnv = "GITHUB_OUTPUT"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Inputs reads step inputs from the environment.
type Inputs struct {
	lookup LookupFunc
}

// NewInputs reads from lookup, or from the process environment when lookup is nil.
func NewInputs(lookup LookupFunc) *Inputs {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Inputs{lookup: lookup}
}

// EnvName maps an input name such as "debug-mode" to INPUT_DEBUG_MODE.
func EnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
}

// Lookup returns the raw value of the input and whether it was set at all.
func (in *Inputs) Lookup(name string) (string, bool) {
	return in.lookup(EnvName(name))
}

// Get returns the raw value, or "" when unset.
func (in *Inputs) Get(name string) string {
	v, _ := in.Lookup(name)
	return v
}

// First returns the value of the first of names that is set to a non-blank value, in order.
func (in *Inputs) First(names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := in.Lookup(n); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Required returns the value, or CONFIGURATION_MISSING when unset or blank.
func (in *Inputs) Required(name string) (string, error) {
	v := in.Get(name)
	if strings.TrimSpace(v) == "" {
		return "", model.Missing(EnvName(name))
	}
	return v, nil
}

// Bool parses the input with ParseBool.
func (in *Inputs) Bool(name string, def bool) bool {
	v, ok := in.Lookup(name)
	if !ok {
		return def
	}
	return ParseBool(v, def)
}

// Env returns a raw environment variable that is not an INPUT_ value.
func (in *Inputs) Env(key string) string {
	v, _ := in.lookup(key)
	return v
}

// ParseBool accepts true/1/yes/on and false/0/no/off in any case. Anything else yields def.
func ParseBool(v string, def bool) bool {
	if b, ok := ParseBoolOK(v); ok {
		return b
	}
	return def
}

// ParseBoolOK is ParseBool without a default; ok is false for blank or unrecognized values.
func ParseBoolOK(v string) (b, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}

// MapLookup builds a LookupFunc over a fixed map, for tests and the HTTP API.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}
