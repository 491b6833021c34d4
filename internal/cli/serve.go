package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"Ducted/internal/config"
	"Ducted/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Starts the HTTP API. Settings come from the environment and an optional
.env file (DUCTED_ADDR, DUCTED_RATE_LIMIT, DUCTED_RATE_BURST, DUCTED_TLS_CERT,
DUCTED_TLS_KEY); --addr overrides DUCTED_ADDR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if !a.verbose {
				logger.SetLevel(cfg.LogLevel)
			}
			limits := a.limits
			if a.standardsPath == "" && cfg.StandardsPath != "" {
				// set only in .env, which is read after flag defaults
				if limits, err = cfg.Limits(); err != nil {
					return err
				}
			}
			srv := &http.Server{
				Addr: cfg.Addr,
				Handler: server.NewHandler(server.Options{
					Limits:    limits,
					Logger:    logger,
					RateLimit: cfg.RateLimit,
					RateBurst: cfg.RateBurst,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return server.Run(cmd.Context(), srv, cfg.TLSCert, cfg.TLSKey, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from DUCTED_ADDR or :8080)")
	return cmd
}
