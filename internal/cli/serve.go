package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcsmith2/markovcity/internal/server"
	"github.com/lcsmith2/markovcity/pkg/cache"
	"github.com/lcsmith2/markovcity/pkg/pipeline"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		redisURL    string
		configPath  string
		cachePrefix string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes grid generation and chain diagrams over HTTP. With
--redis the cache is shared across instances; otherwise the local file
cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				store cache.Cache
				err   error
			)
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisURL != "":
				// Redis may still be starting alongside us; retry the
				// initial connect before giving up.
				err = cache.RetryWithBackoff(ctx, func() error {
					store, err = cache.NewRedisCache(ctx, redisURL)
					return err
				})
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				logger.Info("using redis cache", "url", redisURL)
			default:
				store, err = newCache(false)
				if err != nil {
					return fmt.Errorf("init cache: %w", err)
				}
			}

			var keyer cache.Keyer
			if cachePrefix != "" {
				keyer = cache.NewScopedKeyer(nil, cachePrefix)
			}

			runner := pipeline.NewRunner(store, keyer, logger)
			defer runner.Close()

			srv := server.New(addr, runner, logger)
			srv.ConfigPath = configPath
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "chain configuration file (TOML)")
	cmd.Flags().StringVar(&cachePrefix, "cache-prefix", "", "prefix for cache keys (namespace isolation)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
