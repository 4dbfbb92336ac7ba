package main

import (
	"github.com/spf13/pflag"

	"ciutil/internal/action"
)

func addGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVarP(&a.configPath, "config", "c", "", "YAML config file (default $CIUTIL_CONFIG or ./.ciutil.yaml)")
	fs.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&a.logFormat, "log-format", "", "Log encoding: console or json")
	fs.BoolVarP(&a.debugFlag, "debug", "d", false, "Verbose step logging (overrides INPUT_DEBUG_MODE)")
	fs.StringVarP(&a.outputFile, "output-file", "o", "", "File to append outputs to (overrides $GITHUB_OUTPUT)")
}

// inputValue returns the flag value when it was given on the command line, else the INPUT_ variable
// named input. The bool reports whether either was set at all.
func inputValue(fs *pflag.FlagSet, in *action.Inputs, flag, input string) (string, bool) {
	if fs.Changed(flag) {
		v, _ := fs.GetString(flag)
		return v, true
	}
	return in.Lookup(input)
}

// inputBool is inputValue for boolean inputs, parsed leniently.
func inputBool(fs *pflag.FlagSet, in *action.Inputs, flag, input string, def bool) bool {
	if fs.Changed(flag) {
		v, _ := fs.GetBool(flag)
		return v
	}
	return in.Bool(input, def)
}
