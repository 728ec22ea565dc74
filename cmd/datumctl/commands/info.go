package commands

import (
	"fmt"
	"os"

	"github.com/danmuck/datumctl/internal/datum"
	"github.com/danmuck/datumctl/internal/inspect"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Decode and print the header of FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return a.fail(true, fmt.Errorf("%w: %w", datum.ErrIO, err))
			}
			defer f.Close()

			h, err := datum.DecodeHeader(f)
			if err != nil {
				return a.fail(true, fmt.Errorf("%s: failed to decode header: %w", path, err))
			}
			report := inspect.FromHeader(h, a.cfg.Output.TimeLayout)
			report.Path = path
			return a.printer.PrintTables(report, inspect.FlagBits(h.Flags))
		},
	}
}
