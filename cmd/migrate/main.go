package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/kizora/invoicer/internal/infrastructure/config"
	"github.com/kizora/invoicer/internal/infrastructure/logger"
	"github.com/kizora/invoicer/internal/infrastructure/migration"
	"github.com/kizora/invoicer/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	path     string
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Invoicer database migration tool",
		Long: `Applies the SQL schema migrations to the configured PostgreSQL database.

Migrations are compiled into the binary; pass --path to read them from a
directory instead. Connection settings come from config.toml or the
INVOICER_DATABASE_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(&logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = logger.Sync(opts.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.path, "path", "", "migrations directory (default: embedded migrations)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		withMigrator(opts, &cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs},
			func(m *migration.Migrator, args []string) error { return m.Up() }),
		withMigrator(opts, &cobra.Command{Use: "down", Short: "Roll back all migrations", Args: cobra.NoArgs},
			func(m *migration.Migrator, args []string) error { return m.Down() }),
		withMigrator(opts, &cobra.Command{Use: "step <n>", Short: "Apply n migrations (negative rolls back)", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		withMigrator(opts, &cobra.Command{Use: "goto <version>", Short: "Migrate to a specific version", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		withMigrator(opts, &cobra.Command{Use: "version", Short: "Show the current migration version", Args: cobra.NoArgs},
			func(m *migration.Migrator, args []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					opts.log.Info("No migrations applied")
					return nil
				}
				opts.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			}),
		withMigrator(opts, &cobra.Command{Use: "force <version>", Short: "Set the version without migrating (clears dirty state)", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		newDropCmd(opts),
		newCreateCmd(opts),
		newListCmd(opts),
	)
	return root
}

// withMigrator sets RunE to open the database, build a migrator and run fn.
func withMigrator(opts *options, cmd *cobra.Command, fn func(*migration.Migrator, []string) error) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		m, closeFn, err := openMigrator(opts)
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(m, args)
	}
	return cmd
}

func openMigrator(opts *options) (*migration.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		return nil, nil, fmt.Errorf("sqlite databases are created from the models at server start; migrations apply to postgres only")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, migration.Source{Path: opts.path}, opts.log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, func() {
		if err := m.Close(); err != nil {
			opts.log.Error("Failed to close migrator", zap.Error(err))
		}
	}, nil
}

func newDropCmd(opts *options) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop all database objects",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm dropping every table")
	return withMigrator(opts, cmd, func(m *migration.Migrator, args []string) error {
		if !confirm {
			return fmt.Errorf("drop cancelled; rerun with --confirm")
		}
		return m.Drop()
	})
}

func newCreateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create a new migration file pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.path
			if dir == "" {
				dir = "migrations"
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(dir, args[0], description, time.Now())
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src fs.FS = migrations.FS
			if opts.path != "" {
				src = os.DirFS(opts.path)
			}
			list, err := migration.ListMigrations(src)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations found")
				return nil
			}
			for _, m := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", m.Version, m.Name)
			}
			return nil
		},
	}
}
