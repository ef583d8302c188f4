package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leengari/shardmerge/internal/config"
	"github.com/leengari/shardmerge/internal/logging"
	"github.com/leengari/shardmerge/internal/metrics"
	"github.com/leengari/shardmerge/internal/network"
	"github.com/leengari/shardmerge/internal/repl"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "shardmerge",
	Short: "Merge SHOW statement results across sharded databases",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON-over-TCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(cfg *config.Config, a *app) error {
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.Port = port
			}
			if cfg.MetricsAddr != "" {
				go metrics.Serve(cfg.MetricsAddr)
			}
			network.Start(cfg.Port, a.newEngine)
			return nil
		})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <statement>",
	Short: "Run one SHOW statement and print the merged result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(cfg *config.Config, a *app) error {
			result, err := a.newEngine().Execute(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			repl.PrintResult(cmd.OutOrStdout(), result)
			return nil
		})
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read SHOW statements interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(cfg *config.Config, a *app) error {
			repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), a.newEngine())
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shardmerge.yaml", "path to the config file")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd, queryCmd, replCmd)
}

// withApp loads config, sets up logging and opens the shards around fn
func withApp(fn func(cfg *config.Config, a *app) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeFn := logging.SetupLogger(cfg.Log, os.Stderr)
	defer closeFn()
	slog.SetDefault(logger)

	a, err := bootstrap(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer a.Close()

	logger.Info("Application ready!", "schema", cfg.Schema, "data_sources", len(cfg.DataSources))
	return fn(cfg, a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
