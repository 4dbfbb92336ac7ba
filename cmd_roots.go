package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ciutil/internal/model"
	"ciutil/internal/report"
	"ciutil/internal/roots"
	"ciutil/internal/tui"
)

type rootsOptions struct {
	pattern string
	paths   string
	engine  string
	format  string
	exclude []string
	report  bool
	tui     bool
}

func newRootsCmd(a *app) *cobra.Command {
	var o rootsOptions
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "Extract unique root directories from a comma-separated path list",
		Long: `Applies a regular expression to every path and collects capture group 1, keeping the
first occurrence of each root in input order. Writes unique_root_directories to GITHUB_OUTPUT.

Inputs: INPUT_PATTERN (required, or @preset), INPUT_PATHS, INPUT_OUTPUT_IS_JSON (default true),
INPUT_DEBUG_MODE (default true), INPUT_ENGINE, INPUT_EXCLUDE.`,
		Example: `  ciutil roots --pattern '^([^/.]+)\/' --paths 'Api/a.cs,Web/b.cs,Api/c.cs'
  ciutil roots --pattern @testing --paths "$CHANGED" --report
  ciutil roots --pattern @linting --paths "$CHANGED" --tui`,
		Annotations: map[string]string{debugDefaultKey: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoots(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.pattern, "pattern", "p", "", "Regex with a capture group for the root, or @preset")
	f.StringVar(&o.paths, "paths", "", "Comma-separated paths")
	f.StringVar(&o.engine, "engine", "", "Regex engine: ecmascript (default) or re2")
	f.StringVarP(&o.format, "format", "f", "", "Output format: json or csv (overrides INPUT_OUTPUT_IS_JSON)")
	f.StringSliceVarP(&o.exclude, "exclude", "x", nil, "Glob of paths to skip, e.g. '**/*.md' (repeatable)")
	f.BoolVarP(&o.report, "report", "r", false, "Print a per-path report of the run")
	f.BoolVar(&o.tui, "tui", false, "Open the interactive pattern tester instead of writing outputs")
	return cmd
}

func (a *app) runRoots(cmd *cobra.Command, o rootsOptions) error {
	cfg := a.cfg
	flags := cmd.Flags()

	pattern := cfg.Roots.Pattern
	if flags.Changed("pattern") {
		pattern = o.pattern
	}
	rawPaths := cfg.Roots.Paths
	if flags.Changed("paths") {
		rawPaths = o.paths
	}
	engineName := cfg.Roots.Engine
	if flags.Changed("engine") {
		engineName = o.engine
	}
	exclude := cfg.Roots.Exclude
	if flags.Changed("exclude") {
		exclude = o.exclude
	}
	format := model.FormatFromJSONFlag(cfg.OutputIsJSON())
	if flags.Changed("format") {
		f, err := model.ParseOutputFormat(o.format)
		if err != nil {
			return &model.StepError{Kind: model.KindInvalidInput, Input: "--format", Message: err.Error()}
		}
		format = f
	}

	paths := strings.Split(rawPaths, ",")
	cleaned := model.SplitPaths(rawPaths)

	a.log.Debug(model.IconSearch + " Debug mode is ON")
	a.log.Debug(model.IconSearch + " INPUT_PATTERN: " + pattern)
	a.log.Debug(model.IconSearch + " INPUT_PATHS: " + rawPaths)
	a.log.Debug(fmt.Sprintf("%s Cleaned dirs: %v", model.IconSearch, cleaned))

	if strings.TrimSpace(pattern) == "" {
		return model.Missing(roots.PatternInput)
	}
	resolved, err := cfg.ResolvePattern(pattern)
	if err != nil {
		return err
	}
	engine, err := roots.ParseEngine(engineName)
	if err != nil {
		return &model.StepError{Kind: model.KindInvalidInput, Input: "INPUT_ENGINE", Message: err.Error()}
	}

	if o.tui {
		return a.runTUI(tui.InitialModel(paths, pattern, cfg.ResolvePattern, engine, exclude, format))
	}

	a.log.Info(fmt.Sprintf("%s Getting Unique Root Directories from: %v", model.IconSearch, cleaned))
	a.log.Info("Using pattern: " + resolved)

	e, err := roots.New(resolved,
		roots.WithEngine(engine),
		roots.WithExclude(exclude...),
		roots.OnDiscover(func(root string) {
			a.log.Info(fmt.Sprintf("%s Unique Root Directory found: '%s'", model.IconSearch, root))
		}),
		roots.OnTrace(func(m model.RootMatch) {
			a.log.Debug(fmt.Sprintf("%s Checking '%s': %s", model.IconSearch, m.Path, report.Describe(m)))
		}),
	)
	if err != nil {
		return err
	}

	var found []string
	var matches []model.RootMatch
	if o.report {
		matches, err = e.Explain(paths)
		found = []string{}
		for _, m := range matches {
			if m.Emitted() {
				found = append(found, m.Root)
			}
		}
	} else {
		found, err = e.Extract(paths)
	}
	if err != nil {
		return err
	}

	value, err := roots.Format(found, format)
	if err != nil {
		return err
	}
	a.log.Info(fmt.Sprintf("%s Unique Root Directories: %s", model.IconSearch, value))

	if o.report {
		fmt.Fprint(a.stdout, report.Render(resolved, matches, roots.OutputName+"="+value))
	}

	sink, err := a.sink()
	if err != nil {
		return err
	}
	if err := sink.Set(roots.OutputName, value); err != nil {
		return err
	}
	a.log.Debug("output written", zap.String("name", roots.OutputName), zap.Int("roots", len(found)))
	return nil
}
