package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/internal/metrics"
	httpAdapter "github.com/aretw0/storypath/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Loads the story once and exposes search, validation and saved reports as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := metrics.New()
		env, err := setup(cmd, m.Hooks())
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = env.cfg.Server.Addr
		}

		store, closeStore, err := cli.CreateReportStore(env.cfg.Reports)
		if err != nil {
			return err
		}
		defer closeStore()

		handler := httpAdapter.NewHandler(env.engine,
			httpAdapter.WithReportStore(store),
			httpAdapter.WithMetrics(m.Handler()),
			httpAdapter.WithTopN(env.cfg.Search.TopN),
			httpAdapter.WithLogger(env.logger),
		)

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			env.logger.Info("server listening", "addr", srv.Addr, "story", env.engine.Story().Title())
			serverErrors <- srv.ListenAndServe()
		}()

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sc.Done():
			env.logger.Info("shutting down", "signal", sc.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				env.logger.Error("graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			env.logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
}
