package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/invopop/jsonschema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/ynxchain/ynx-indexer/internal/cache"
	"github.com/ynxchain/ynx-indexer/internal/chain"
	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/config"
	"github.com/ynxchain/ynx-indexer/internal/governance"
	"github.com/ynxchain/ynx-indexer/internal/ingest"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/metrics"
	"github.com/ynxchain/ynx-indexer/internal/query"
	"github.com/ynxchain/ynx-indexer/internal/store"
	"github.com/ynxchain/ynx-indexer/pkg/api"
	pkgconfig "github.com/ynxchain/ynx-indexer/pkg/config"
	"golang.org/x/sync/errgroup"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║            YNX Indexer v%s             ║
║   Blocks, transactions and validators     ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "YNX Indexer - block and transaction indexer for YNX chains",
	Long: `YNX Indexer follows a YNX node over its RPC interface, stores every block and
transaction in append-only logs and serves them, together with validator and
governance summaries, over a read-only HTTP API.

Configuration is read from an optional file (--config), then .env files, then
INDEXER_* and YNX_* environment variables.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := &jsonschema.Reflector{FieldNameTag: "json"}
		schema := r.Reflect(&pkgconfig.Config{})
		schema.Title = "YNX Indexer configuration"

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the persisted indexer checkpoint",
	Long:  `Print the last indexed height and cumulative counts without starting ingestion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := cfg.Indexer.CheckpointPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "no checkpoint at %s\n", path)
			return nil
		}

		checkpoint, err := store.OpenCheckpoint(path, cfg.Indexer.DB, logger.NewNopLogger())
		if err != nil {
			return err
		}
		defer checkpoint.Close()

		state, err := checkpoint.Load()
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (.yaml, .json or .toml)")
	rootCmd.AddCommand(schemaCmd, stateCmd)
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	// Load configuration
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.GetDefaultLevel(), cfg.Logging.IsDevelopment())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Close() }()

	for _, w := range warnings {
		log.Warn(w)
	}

	componentLogger := func(component string) *logger.Logger {
		return logger.NewComponentLoggerFromConfig(component, cfg.Logging)
	}

	// Setup context with cancellation on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chain.NewClient(cfg.Chain.RPCURL, cfg.Chain.Timeout.Duration, componentLogger(common.ComponentChainClient))
	if err != nil {
		return fmt.Errorf("failed to create chain client: %w", err)
	}

	st, err := store.Open(cfg.Indexer, componentLogger(common.ComponentLogStore))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warnw("failed to close store", "error", err)
		}
	}()

	recent, err := cache.New(cfg.Indexer.BlockCacheSize, cfg.Indexer.TxCacheSize, componentLogger(common.ComponentCache))
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}

	gov := governance.NewProvider(client, governance.FromConfig(cfg.Governance), componentLogger(common.ComponentGovernance))

	loop := ingest.New(ingest.Config{
		PollInterval: cfg.Indexer.PollInterval.Duration,
		StartHeight:  cfg.Indexer.StartHeight,
		Backfill:     cfg.Indexer.Backfill,
	}, client, st, recent, gov, componentLogger(common.ComponentIngest))

	engine := query.New(query.Config{
		RPC:          cfg.Chain.RPCURL,
		DefaultLimit: cfg.API.DefaultLimit,
		MaxLimit:     cfg.API.MaxLimit,
	}, recent, st, loop, gov, client, componentLogger(common.ComponentQuery))

	prometheus.MustRegister(metrics.NewStateCollector(st, loop))

	apiServer := api.NewServer(&cfg.API, engine, metrics.Handler(), componentLogger(common.ComponentAPI))

	log.Infow("starting YNX indexer",
		"rpc", cfg.Chain.RPCURL,
		"data_dir", cfg.Indexer.DataDir,
		"listen_address", cfg.API.ListenAddress,
		"last_height", st.State().LastHeight,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return apiServer.Start(gctx) })
	g.Go(func() error { return metrics.RunSystemMetrics(gctx) })

	if err := g.Wait(); err != nil {
		log.Errorw("indexer stopped with error", "error", err)
		return err
	}

	log.Info("YNX indexer stopped")
	return nil
}
