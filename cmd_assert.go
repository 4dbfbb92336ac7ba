package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciutil/internal/action"
	"ciutil/internal/assertion"
	"ciutil/internal/model"
)

func newAssertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assert",
		Short: "Check a value and record PASS/FAIL in a summary file",
		Long: `Compares INPUT_ACTUAL with INPUT_EXPECTED using INPUT_MODE (exact, endswith, present, absent
or regex) and appends "PASS: <name>" or "FAIL: <name> (...)" to INPUT_SUMMARY_FILE.

A failed assertion exits 1 unless INPUT_EXIT_ON_FAIL is false.`,
		Example: `  ciutil assert --test-name roots --expected '["Api"]' --actual "$ROOTS" --summary-file out/summary.txt`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssert(cmd)
		},
	}

	f := cmd.Flags()
	f.String("expected", "", "Expected value, or pattern in regex mode")
	f.String("actual", "", "Actual value")
	f.String("summary-file", "", "File the PASS/FAIL line is appended to")
	f.String("test-name", "", "Name recorded in the summary")
	f.String("mode", "", "exact (default), endswith, present, absent or regex")
	f.Bool("exit-on-fail", true, "Exit 1 when the assertion fails")
	return cmd
}

func (a *app) runAssert(cmd *cobra.Command) error {
	flags := cmd.Flags()

	expected, ok := inputValue(flags, a.inputs, "expected", "expected")
	if !ok {
		return model.Missing(action.EnvName("expected"))
	}
	actual, ok := inputValue(flags, a.inputs, "actual", "actual")
	if !ok {
		return model.Missing(action.EnvName("actual"))
	}
	summaryFile, _ := inputValue(flags, a.inputs, "summary-file", "summary_file")
	if summaryFile == "" {
		return model.Missing(action.EnvName("summary_file"))
	}
	name, _ := inputValue(flags, a.inputs, "test-name", "test_name")
	if name == "" {
		return model.Missing(action.EnvName("test_name"))
	}
	rawMode, _ := inputValue(flags, a.inputs, "mode", "mode")
	mode, err := assertion.ParseMode(rawMode)
	if err != nil {
		return err
	}
	exitOnFail := inputBool(flags, a.inputs, "exit-on-fail", "exit_on_fail", true)

	a.log.Info(fmt.Sprintf("[ASSERT] %s :: mode=%s expected='%s' actual='%s'", name, mode, expected, actual))

	res, err := assertion.Evaluate(assertion.Assertion{
		Name:     name,
		Expected: expected,
		Actual:   actual,
		Mode:     mode,
	})
	if err != nil {
		return err
	}
	if err := assertion.Record(summaryFile, res); err != nil {
		return &model.StepError{
			Kind:    model.KindOutputSinkUnavailable,
			Input:   action.EnvName("summary_file"),
			Message: "cannot record assertion",
			Cause:   err,
		}
	}

	if res.Pass {
		a.log.Info(res.Line())
		return nil
	}
	if !exitOnFail {
		a.log.Warn(model.IconWarn + " " + res.Line())
		return nil
	}
	return &model.StepError{Kind: model.KindAssertionFailed, Message: res.Line()}
}
