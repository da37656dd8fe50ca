package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hmans/tasks/internal/config"
	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/logging"
	"github.com/hmans/tasks/internal/taskstore"
)

// noStoreAnnotation marks commands that run without a database.
const noStoreAnnotation = "tasks/no-store"

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	store      *taskstore.Store
	resolver   *graph.Resolver
)

// configFlags maps config keys to the flags that override them.
var configFlags = map[string]string{
	"server.host":     "host",
	"server.port":     "port",
	"database.driver": "db-driver",
	"database.dsn":    "db",
	"log.level":       "log-level",
}

var rootCmd = &cobra.Command{
	Use:   "tasks",
	Short: "A GraphQL task list backed by a relational database",
	Long: `Tasks serves a small GraphQL API for creating, completing, renaming and
deleting tasks. Data lives in SQLite by default; MySQL and PostgreSQL are
supported through the database settings.

Configuration is read from .tasks.yml in the working directory (or --config),
then TASKS_* environment variables, then command line flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func needsStore(cmd *cobra.Command) bool {
	if cmd.Annotations[noStoreAnnotation] == "true" {
		return false
	}
	if f := cmd.Flags().Lookup("schema"); f != nil && f.Changed {
		return false
	}
	return true
}

// setup loads configuration and opens the store for cmd.
func setup(cmd *cobra.Command) error {
	flags := make(map[string]*pflag.Flag, len(configFlags))
	for key, name := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			flags[key] = f
		}
	}

	var err error
	cfg, err = config.Load(configPath, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	store, err = taskstore.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	if err := store.Migrate(cmdContext(cmd)); err != nil {
		return err
	}

	resolver = graph.NewResolver(store, logger)
	return nil
}

func teardown() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./"+config.ConfigFile+")")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver ("+strings.Join(config.KnownDrivers, ", ")+")")
	rootCmd.PersistentFlags().String("db", "", "Database DSN (file path for sqlite)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	_ = teardown()
	if err != nil {
		os.Exit(1)
	}
}
