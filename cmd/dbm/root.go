package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pwrlabs/dbm/dbm"
	"github.com/pwrlabs/dbm/observability"
	"github.com/pwrlabs/dbm/store"
)

type rootOptions struct {
	configFile string
	basePath   string
	staticPath string
	strategy   string
	verbose    bool
	logFormat  string

	logger *zap.Logger
	db     *dbm.DB
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dbm",
		Short: "Inspect and edit per-instance field storage",
		Long: `dbm reads and writes the named fields that application objects persist
under a base directory, using either one file per field ("bytes") or one
document per instance ("document").

Examples:
  dbm set Account 42 balance 12.34 --as decimal
  dbm get Account 42 balance --as decimal
  dbm ls Account`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&opts.basePath, "base", "", "Base directory for instance storage (overrides config)")
	flags.StringVar(&opts.staticPath, "static-base", "", "Directory for the static store (overrides config)")
	flags.StringVar(&opts.strategy, "strategy", "", "Storage strategy: bytes or document (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every storage event to stderr")
	flags.StringVar(&opts.logFormat, "log-format", "slog", "Event log format: slog or zap")

	cmd.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newRmCmd(opts),
		newLsCmd(opts),
		newNewCmd(),
	)
	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg := dbm.DefaultConfig()
	if o.configFile != "" {
		loaded, err := dbm.LoadConfig(o.configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if o.basePath != "" {
		cfg.Store.BasePath = o.basePath
	}
	if o.staticPath != "" {
		cfg.Store.StaticPath = o.staticPath
	}
	if o.strategy != "" {
		cfg.Store.Strategy = store.Strategy(o.strategy)
	}

	observer, err := o.observer(cmd)
	if err != nil {
		return err
	}

	db, err := dbm.New(&cfg, dbm.WithObserver(observer))
	if err != nil {
		return err
	}
	o.db = db
	return nil
}

func (o *rootOptions) observer(cmd *cobra.Command) (observability.Observer, error) {
	switch o.logFormat {
	case "slog":
		level := slog.LevelWarn
		if o.verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return observability.NewSlogObserver(logger), nil
	case "zap":
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if o.verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		o.logger = logger
		return observability.NewZapObserver(logger), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", o.logFormat)
	}
}
