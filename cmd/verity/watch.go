package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"verity-hq/verity/pkg/cli"
	"verity-hq/verity/pkg/config"
	"verity-hq/verity/pkg/findings"
	"verity-hq/verity/pkg/findings/recorder"
	"verity-hq/verity/pkg/findings/retention"
	"verity-hq/verity/pkg/findings/storage"
	"verity-hq/verity/pkg/manager"
	"verity-hq/verity/pkg/telemetry/logging"
	"verity-hq/verity/pkg/telemetry/metrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate contracts continuously, reloading on changes",
	Long: `Load and validate the configured contract source, then watch it for
changes and revalidate after every change burst.

Runs until interrupted. Validation results go to the log; when findings
persistence is enabled each run's diagnostics are stored under a fresh
session, and when a catalog path is configured every clean run's file set
is snapshotted.

Example:
  verity watch --config config.yaml`,
	RunE: watchContracts,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchContracts(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	opts := []manager.ManagerOption{manager.WithLogger(logger)}

	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		opts = append(opts, manager.WithMetrics(
			metrics.NewContractMetrics(&cfg.Telemetry.Metrics, registry),
		))
	}

	if cfg.Contracts.CatalogPath != "" {
		catalog, err := manager.NewCatalog(cfg.Contracts.CatalogPath)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		opts = append(opts, manager.WithCatalog(catalog))
	}

	ctx := cli.SetupSignalHandler()

	if cfg.Findings.Enabled {
		store, err := buildFindingsStorage(&cfg.Findings)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()

		opts = append(opts, manager.WithRecorder(recorder.New(store)))

		pruner := retention.NewPruner(store, &retention.Config{
			RetentionDays: cfg.Findings.RetentionDays,
			PruneSchedule: cfg.Findings.PruneSchedule,
		})
		if err := pruner.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer pruner.Stop()
	}

	m := manager.NewContractManager(&cfg.Contracts, opts...)
	defer m.Close()

	if _, err := m.Load(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	if !cfg.Contracts.Watch {
		return fmt.Errorf("watch mode is disabled; set contracts.watch: true or use 'verity validate'")
	}

	if err := m.Watch(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	return nil
}

// buildFindingsStorage creates the configured findings backend.
func buildFindingsStorage(cfg *config.FindingsConfig) (findings.Storage, error) {
	switch cfg.Backend {
	case "sqlite":
		sqliteCfg := storage.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.SQLitePath
		return storage.NewSQLiteStorage(sqliteCfg)
	default:
		return storage.NewMemoryStorage(), nil
	}
}
