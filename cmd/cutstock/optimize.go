package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cutstock/core/internal/config"
	"github.com/cutstock/core/internal/engine"
	"github.com/cutstock/core/internal/events"
	"github.com/cutstock/core/internal/executor"
	"github.com/cutstock/core/internal/logging"
	"github.com/cutstock/core/internal/oracle"
	"github.com/cutstock/core/internal/store"
	"github.com/cutstock/core/internal/workerpool"
)

func newOptimizeCmd() *cobra.Command {
	var jobsPath, stockPath, jobID, algorithm string
	var kerf int

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run one optimization scenario and print the resulting plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				cfg = config.Default()
			}

			jobs := store.NewInMemoryJobStore()
			if jobsPath != "" {
				if err := store.LoadJobs(jobsPath, jobs); err != nil {
					return fmt.Errorf("loading jobs: %w", err)
				}
			}

			stockStore := store.NewInMemoryStockStore()
			if stockPath != "" {
				if err := loadStockFile(stockPath, stockStore); err != nil {
					return fmt.Errorf("loading stock: %w", err)
				}
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

			bus := events.NewInMemoryBus()
			bus.Subscribe(func(e events.Event) {
				logger.Info("optimization event", "kind", e.Kind, "scenarioId", e.ScenarioID)
			})

			var policyOracle oracle.Oracle = oracle.Noop{}
			if cfg.OracleEnabled {
				policyOracle = oracle.Heuristic{}
			}

			eng := engine.New(jobs, stockStore, pool, bus, policyOracle)

			var params executor.Params
			if algorithm != "" {
				params.Algorithm = algorithm
			}
			if cmd.Flags().Changed("kerf") {
				params.Kerf = &kerf
			}

			ctx := logging.Into(cmd.Context(), logger)
			out := eng.RunOptimization(ctx, engine.Request{JobID: jobID, Params: params})
			if !out.Success {
				return fmt.Errorf("optimization failed: %s", out.Err.Error())
			}

			encoded, err := json.MarshalIndent(out.Plan, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobsPath, "jobs", "", "path to a JSON file of jobs")
	cmd.Flags().StringVar(&stockPath, "stock", "", "path to a JSON file of stock")
	cmd.Flags().StringVar(&jobID, "job-id", "", "id of the job to optimize")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "algorithm name override")
	cmd.Flags().IntVar(&kerf, "kerf", 3, "kerf width in millimeters")
	cmd.MarkFlagRequired("job-id")
	return cmd
}
