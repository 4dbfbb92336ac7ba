package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciutil/internal/model"
)

func newVersionCmd(a *app) *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "ciutil version %s\n", model.Version)
			if update {
				checkUpdate(a.stdout, model.Version, cmd.Flags().Changed("update"))
			}
		},
	}
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Check GitHub releases for a newer version")
	return cmd
}
