package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"

	"ciutil/internal/action"
	"ciutil/internal/config"
	"ciutil/internal/logging"
	"ciutil/internal/model"
)

// debugDefaultKey is the command annotation holding the step's debug_mode default.
const debugDefaultKey = "ciutil/debug-default"

// Release coordinates checked by `ciutil version --update`. Overridable with -ldflags -X.
var (
	releaseOwner = "ciutil"
	releaseRepo  = "ciutil"
)

// app carries what every command needs once the root pre-run hook has resolved config and logging.
type app struct {
	inputs *action.Inputs
	stdout io.Writer
	cfg    *config.Config
	log    *zap.Logger
	debug  bool

	// Global flags
	configPath string
	logLevel   string
	logFormat  string
	debugFlag  bool
	outputFile string

	newLogger func(logging.Options) (*zap.Logger, error)
	runTUI    func(tea.Model) error
}

func newApp() *app {
	return &app{
		inputs:    action.NewInputs(nil),
		stdout:    os.Stdout,
		newLogger: logging.New,
		runTUI:    runTUI,
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ciutil",
		Short: "CI pipeline utility steps",
		Long: `ciutil bundles small CI steps that read INPUT_* environment variables and append
name=value lines to the file named by GITHUB_OUTPUT.

Every input can also be given as a flag, which wins over the environment.`,
		Example: `  INPUT_PATTERN='^([^/.]+)\/' INPUT_PATHS='A/x.cs,B/y.cs' ciutil roots
  ciutil roots --pattern @testing --paths "$CHANGED" --report
  ciutil align --names a,b --usernames u1,u2 --passwords p1,p2 --urls s1,s2
  ciutil serve --addr 127.0.0.1:8080`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), a)

	rootCmd.AddCommand(
		newRootsCmd(a),
		newAlignCmd(a),
		newRelpathCmd(a),
		newAssertCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup layers config file, environment and flags, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Discover(a.configPath, a.inputs)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(a.inputs)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Encoding = a.logFormat
	}
	if flags.Changed("output-file") {
		cfg.OutputFile = a.outputFile
	}
	a.debug = cfg.Debug(cmd.Annotations[debugDefaultKey] == "true")
	if flags.Changed("debug") {
		a.debug = a.debugFlag
	}
	a.cfg = cfg

	if a.log == nil {
		logger, err := a.newLogger(logging.Options{
			Level:    cfg.Logging.Level,
			Encoding: cfg.Logging.Encoding,
			Debug:    a.debug,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.log = logger
	}
	if cfg.Source != "" {
		a.log.Debug("config loaded", zap.String("file", cfg.Source))
	}
	return nil
}

// sink opens the runner's output file.
func (a *app) sink() (action.Sink, error) {
	return action.NewFileSink(a.cfg.OutputFile)
}

// fail reports err the way runners surface step errors: one line on stderr.
func (a *app) fail(err error) {
	if a.log == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	var se *model.StepError
	if errors.As(err, &se) {
		a.log.Error("Error: "+se.Error(), zap.String("code", string(se.Kind)))
		return
	}
	a.log.Error("Error: " + err.Error())
}

// run executes the command line and returns the process exit code.
func run(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	if err := cmd.Execute(); err != nil {
		a.fail(err)
		if a.log != nil {
			_ = a.log.Sync()
		}
		return 1
	}
	return 0
}

func runTUI(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func checkUpdate(w io.Writer, currentVer string, explicit bool) {
	githubTag := &latest.GithubTag{
		Owner:      releaseOwner,
		Repository: releaseRepo,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Fprintf(w, "\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Fprintf(w, "👉 Download it from https://github.com/%s/%s/releases\n", releaseOwner, releaseRepo)
	} else if explicit {
		fmt.Fprintf(w, "%s You are using the latest version: %s\n", model.IconDone, currentVer)
	}
}

func main() {
	os.Exit(run(newApp(), os.Args[1:]))
}
