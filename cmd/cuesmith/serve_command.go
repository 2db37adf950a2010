package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cuesmith/internal/config"
	"cuesmith/internal/generation"
	"cuesmith/internal/logging"
	"cuesmith/internal/preflight"
	"cuesmith/internal/runlog"
	"cuesmith/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the subtitle generation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if bind != "" {
				cfg.Server.Bind = bind
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("--bind: %w", err)
				}
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); len(failed) > 0 {
				return fmt.Errorf("preflight %s: %s", failed[0].Name, failed[0].Detail)
			}

			store, err := runlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run log: %w", err)
			}
			defer store.Close()

			svc := generation.NewService(cfg, store, logger)
			srv, err := server.New(cfg, svc, store, logger)
			if err != nil {
				return err
			}
			if cfg.Server.Token == "" {
				logging.WarnWithContext(logger, "api token not configured; requests are unauthenticated", "auth_disabled",
					logging.Hint("set server.token or "+config.TokenEnvVar),
					logging.Impact("anyone who can reach the bind address can generate subtitles"))
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("cuesmith server starting",
				logging.String("bind", cfg.Server.Bind),
				logging.String("run_log_path", store.Path()),
				logging.String("config_path", ctx.configPath))
			return srv.Run(runCtx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured bind address")
	return cmd
}
