// Command cutstock runs the cutting-stock optimization core as a CLI:
// load a job from a JSON file, run it through the engine, and print the
// resulting plan.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cutstock/core/internal/config"
	"github.com/cutstock/core/internal/logging"
)

var (
	configPath string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cutstock",
	Short: "Cutting-stock optimization core",
	Long: `cutstock runs the 1D bar and 2D sheet cutting-stock optimization core
against a job of required pieces and a pool of available stock.

Core features:
  • FFD/BFD first-fit and best-fit decreasing bar packing
  • Bottom-Left Fill and Guillotine sheet packing
  • A bounded worker pool for concurrent scenario execution
  • Lifecycle events and an optional policy oracle for algorithm selection`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load config %s: %v\n", configPath, err)
			cfg = config.Default()
		}
		logger = logging.New(logging.ParseLevel(cfg.LogLevel))
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cutstock.yaml", "path to engine config file")
	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
