// Package commands implements the datumctl command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/datumctl/internal/cli/output"
	"github.com/danmuck/datumctl/internal/config"
	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// skipConfig marks commands that must run without loading a config file.
const skipConfig = "skip-config"

// ExitError carries a process exit code. Err is printed by the command that
// produced it, if at all.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

type app struct {
	configPath string
	output     string
	noColor    bool
	verbose    bool

	cfg     config.Config
	printer *output.Printer
}

// NewRootCmd builds a fresh command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:   "datumctl",
		Short: "Inspect and validate datum headers",
		Long: `datumctl recognizes, validates and decodes the 64-byte datum header.

The has-* commands report through their exit status so they can be used in
shell loops over fixture sets. Use "datumctl [command] --help" for more
information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $DATUMCTL_CONFIG or user config dir)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output format (table|json|yaml)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print errors and debug logs")

	root.AddCommand(
		newHasHeaderCmd(a),
		newHasValidHeaderCmd(a),
		newHasInvalidHeaderCmd(a),
		newInfoCmd(a),
		newScanCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// Execute runs the command tree against the process arguments and returns
// the exit status.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfig] == "" {
		path := a.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.LoadOrDefault(path, a.configPath != "")
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	logCfg := logs.DefaultConfig(logs.ProfileRuntime)
	logCfg.Out = cmd.ErrOrStderr()
	logCfg.Level, _ = logs.ParseLevel(a.cfg.Log.Level)
	logCfg.NoColor = a.cfg.Log.NoColor || a.noColor
	if a.verbose {
		logCfg.Level = zerolog.DebugLevel
	}
	logs.ApplyWithEnv(logCfg)

	raw := a.cfg.Output.Format
	if cmd.Flags().Changed("output") {
		raw = a.output
	}
	format, err := output.ParseFormat(raw)
	if err != nil {
		return err
	}
	color := a.cfg.Output.Color && !a.noColor
	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, color)
	logs.Debugf("datumctl: command=%s format=%s", cmd.Name(), format)
	return nil
}

// fail prints err when always is set or --verbose was given and returns
// exit status 1.
func (a *app) fail(always bool, err error) error {
	if always || a.verbose {
		a.printer.Error(err.Error())
	}
	return &ExitError{Code: 1, Err: err}
}
