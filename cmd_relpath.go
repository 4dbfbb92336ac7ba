package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciutil/internal/relpath"
)

func newRelpathCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relpath",
		Short: "Print the ../ prefix leading from a nested project file up to a root file",
		Long: `Compares the directories of INPUT_ROOT_FILE and INPUT_SUBDIRECTORY_FILE and prints "../"
once per level the root sits above the subdirectory file. The value is also written as
relative_path when GITHUB_OUTPUT is set.`,
		Example: `  ciutil relpath --root-file Directory.Build.props --subdirectory-file src/Api/Api.csproj`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRelpath(cmd)
		},
	}

	f := cmd.Flags()
	f.String("root-file", "", "File at the top of the tree")
	f.String("subdirectory-file", "", "Nested file")
	f.String("separator", "", "Separator to emit (default: platform separator)")
	return cmd
}

func (a *app) runRelpath(cmd *cobra.Command) error {
	flags := cmd.Flags()
	rootFile, _ := inputValue(flags, a.inputs, "root-file", "root_file")
	subFile, _ := inputValue(flags, a.inputs, "subdirectory-file", "subdirectory_file")
	sep, _ := flags.GetString("separator")

	a.log.Info("Relative path computation:")
	a.log.Debug("rootDir: " + relpath.ToPosix(rootFile))
	a.log.Debug("subDir: " + relpath.ToPosix(subFile))

	rel, err := relpath.Compute(rootFile, subFile, sep)
	if err != nil {
		return err
	}
	a.log.Info(fmt.Sprintf("relative path: '%s'", rel))
	fmt.Fprintln(a.stdout, rel)

	// Writing the output is optional for this step.
	if a.cfg.OutputFile == "" {
		return nil
	}
	sink, err := a.sink()
	if err != nil {
		return err
	}
	return sink.Set(relpath.OutputName, rel)
}
