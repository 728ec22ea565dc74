package commands

import (
	"fmt"

	"github.com/danmuck/datumctl/internal/observability"
	"github.com/danmuck/datumctl/internal/scan"
	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		metricsPath    string
		strict         bool
		maxDepth       int
		followSymlinks bool
	)
	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Classify the header of every file under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := scan.Options{
				FollowSymlinks: a.cfg.Scan.FollowSymlinks,
				MaxDepth:       a.cfg.Scan.MaxDepth,
				TimeLayout:     a.cfg.Output.TimeLayout,
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("follow-symlinks") {
				opts.FollowSymlinks = followSymlinks
			}
			if opts.MaxDepth < 0 {
				return fmt.Errorf("--max-depth must not be negative")
			}

			report, err := scan.Dir(cmd.Context(), args[0], opts)
			if err != nil {
				return a.fail(true, err)
			}
			if err := a.printer.PrintTables(report, report.Summary()); err != nil {
				return err
			}
			if metricsPath != "" {
				if err := observability.WriteTextfile(metricsPath); err != nil {
					return a.fail(true, fmt.Errorf("metrics textfile write failed (%s): %w", metricsPath, err))
				}
			}
			if strict && !report.AllValid() {
				bad := len(report.Entries) - report.Counts[observability.ResultValid]
				return a.fail(false, fmt.Errorf("%d of %d files are not valid", bad, len(report.Entries)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsPath, "metrics-textfile", "", "Write scan metrics in prometheus text format to this path")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when any file is not valid")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Limit recursion depth (0 is unlimited)")
	cmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Inspect symlinked files")
	return cmd
}
