package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cutstock/core/internal/config"
	"github.com/cutstock/core/internal/workerpool"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the worker pool as a long-lived process with a metrics and health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				cfg = config.Default()
			}

			pool := workerpool.New(workerpool.Config{
				MinWorkers:   cfg.WorkerPool.MinWorkers,
				MaxWorkers:   cfg.WorkerPool.MaxWorkers,
				MaxQueue:     cfg.WorkerPool.MaxQueue,
				TaskTimeout:  cfg.WorkerPool.TaskTimeout,
				IdleTimeout:  cfg.WorkerPool.IdleTimeout,
				DrainTimeout: cfg.WorkerPool.DrainTimeout,
			})
			defer pool.Shutdown()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				if !pool.Healthy() {
					w.WriteHeader(http.StatusServiceUnavailable)
				}
				json.NewEncoder(w).Encode(pool.Stats())
			})

			srv := &http.Server{Addr: addr, Handler: mux}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				logger.Info("serving", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("server error", "err", err)
				}
			}()

			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address for /metrics and /healthz")
	return cmd
}
