package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ciutil/internal/align"
	"ciutil/internal/model"
)

func newAlignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Validate and export parallel credential lists",
		Long: `Aligns the comma-separated names, usernames, passwords and urls inputs into a consistent set
of records and writes count, names, usernames, passwords and urls to GITHUB_OUTPUT.

Missing or unusable inputs produce count=0 and empty lists; this is not an error.
INPUT_DEGUG_MODE is accepted as an alias of INPUT_DEBUG_MODE.`,
		Example: `  INPUT_NAMES=feed INPUT_USERNAMES=bot INPUT_PASSWORDS="$TOKEN" INPUT_URLS=https://nuget.example/v3 ciutil align`,
		Annotations: map[string]string{debugDefaultKey: "false"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAlign(cmd)
		},
	}

	f := cmd.Flags()
	f.String("names", "", "Comma-separated source names")
	f.String("usernames", "", "Comma-separated usernames")
	f.String("passwords", "", "Comma-separated passwords or tokens")
	f.String("urls", "", "Comma-separated source URLs")
	return cmd
}

func (a *app) runAlign(cmd *cobra.Command) error {
	flags := cmd.Flags()
	in := model.CredentialLists{}
	in.Names, _ = inputValue(flags, a.inputs, "names", "names")
	in.Usernames, _ = inputValue(flags, a.inputs, "usernames", "usernames")
	in.Passwords, _ = inputValue(flags, a.inputs, "passwords", "passwords")
	in.URLs, _ = inputValue(flags, a.inputs, "urls", "urls")

	a.log.Debug(model.IconSearch + " Raw inputs:")
	a.log.Debug("  names='" + in.Names + "'")
	a.log.Debug("  usernames='" + in.Usernames + "'")
	a.log.Debug("  passwords=" + mask(in.Passwords))
	a.log.Debug("  urls='" + in.URLs + "'")

	sink, err := a.sink()
	if err != nil {
		return err
	}

	out := align.Align(in, func(msg string) { a.log.Debug(msg) })
	for _, o := range align.Outputs(out) {
		if err := sink.Set(o.Name, o.Value); err != nil {
			return err
		}
	}

	a.log.Debug(model.IconDone + " Normalized outputs:")
	a.log.Debug("  count=" + strconv.Itoa(out.Count))
	a.log.Debug("  names=" + strings.Join(out.Names, ","))
	a.log.Debug("  usernames=" + strings.Join(out.Usernames, ","))
	a.log.Debug("  urls=" + strings.Join(out.URLs, ","))
	a.log.Info(align.Summary(out))
	return nil
}

// mask reports how many password entries were given without echoing any of them.
func mask(csv string) string {
	if strings.TrimSpace(csv) == "" {
		return "(empty)"
	}
	return "(" + strconv.Itoa(len(strings.Split(csv, ","))) + " masked)"
}
