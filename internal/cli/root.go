// Package cli implements leadctl, the command-line companion to the
// LeadShift server. It talks to the same database and archive storage.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DukeRupert/leadshift/internal"
	"github.com/DukeRupert/leadshift/internal/csvimport"
	"github.com/DukeRupert/leadshift/internal/repository"
	"github.com/DukeRupert/leadshift/internal/service"
	"github.com/DukeRupert/leadshift/internal/storage"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

const defaultFallbackCount = 15

// Execute runs leadctl and returns the process exit code.
func Execute() int {
	_ = godotenv.Load()

	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// globals holds the persistent flags after env resolution.
type globals struct {
	databaseURL string
	driver      string
	storagePath string
	output      string
	logLevel    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Manage LeadShift leads from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// flag > env > default
			if !cmd.Flags().Changed("database-url") {
				g.databaseURL = os.Getenv("DATABASE_URL")
			}
			if !cmd.Flags().Changed("driver") {
				if v := os.Getenv("DATABASE_DRIVER"); v != "" {
					g.driver = v
				}
			}
			if !cmd.Flags().Changed("storage-path") {
				if v := os.Getenv("LOCAL_STORAGE_PATH"); v != "" {
					g.storagePath = v
				}
			}
			return validateOutputFormat(g.output)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.databaseURL, "database-url", "", "Database URL or SQLite path (env DATABASE_URL)")
	pf.StringVar(&g.driver, "driver", internal.DriverPostgres, "Database driver: postgres or sqlite3 (env DATABASE_DRIVER)")
	pf.StringVar(&g.storagePath, "storage-path", "./storage", "Directory for archived uploads (env LOCAL_STORAGE_PATH)")
	pf.StringVarP(&g.output, "output", "o", OutputTable, "Output format (table, json)")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newMigrateCmd(g))
	root.AddCommand(newImportCmd(g))
	root.AddCommand(newListCmd(g))
	root.AddCommand(newReportCmd(g))

	return root
}

func validateOutputFormat(output string) error {
	if output != OutputTable && output != OutputJSON {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	return internal.NewLogger(w, "development", g.logLevel)
}

// openDB opens the database and brings its schema up to date.
func (g *globals) openDB(ctx context.Context) (*sql.DB, error) {
	if g.databaseURL == "" {
		return nil, fmt.Errorf("a database is required: pass --database-url or set DATABASE_URL")
	}
	if g.driver != internal.DriverPostgres && g.driver != internal.DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q: use 'postgres' or 'sqlite3'", g.driver)
	}

	db, err := internal.OpenDatabase(ctx, g.driver, g.databaseURL)
	if err != nil {
		return nil, err
	}
	if err := internal.RunMigrations(db, g.driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// leadService wires a LeadService over db and the local archive.
func (g *globals) leadService(db *sql.DB, mapping csvimport.Mapping, logger *slog.Logger) (service.LeadService, error) {
	store, err := storage.New(storage.Config{
		Provider: storage.ProviderLocal,
		Local:    storage.LocalConfig{BasePath: g.storagePath},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	return service.NewLeadService(repository.New(db, g.driver), store, service.LeadConfig{
		FallbackCount: defaultFallbackCount,
		Mapping:       mapping,
	}, logger), nil
}
