package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/datumctl/internal/inspect"
	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/danmuck/datumctl/internal/observability"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP header inspection service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg := a.cfg.Server
			if addr != "" {
				srvCfg.Addr = addr
			}
			level, _ := logs.ParseLevel(a.cfg.Log.Level)
			logger := observability.InitLogger(srvCfg.Name, level)
			inspect.Version = Version

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := inspect.New(srvCfg, a.cfg.Output.TimeLayout)
			if err != nil {
				return a.fail(true, err)
			}
			logger.Info().Str("addr", srvCfg.Addr).Str("version", Version).Msg("datumctl serve starting")
			if err := server.Serve(ctx); err != nil {
				logger.Error().Err(err).Msg("datumctl serve stopped")
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
