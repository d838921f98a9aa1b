package projectflow

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/arkamaya/projectflow/internal/config"
	"github.com/arkamaya/projectflow/internal/engine"
	"github.com/arkamaya/projectflow/internal/migrations"
	"github.com/arkamaya/projectflow/internal/repository"
	"github.com/arkamaya/projectflow/pkg/projectflow/core"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lmittmann/tint"

	_ "github.com/go-sql-driver/mysql"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Engine bundles the workflow definition store and the transition resolver
// over a shared database connection. The consuming project lifecycle layer
// calls Resolver.FirstStep when creating a project and
// Resolver.ResolveTransition on every submitted action, applying the returned
// fields onto its own project record.
type Engine struct {
	Store    *engine.DefinitionStore
	Resolver *engine.Resolver
	db       *sql.DB
}

// Open validates configuration, connects to the configured database, runs
// migrations and bootstraps the default workflow. The caller owns Close.
func Open() (*Engine, error) {
	databaseType := config.GetSystemSettingString(config.DATABASE_TYPE)
	if databaseType == "" || (databaseType != config.DATABASE_TYPE_POSTGRES && databaseType != config.DATABASE_TYPE_MYSQL && databaseType != config.DATABASE_TYPE_SQLLITE) {
		panic("PFLOW_DATABASE_TYPE must be set to one of the following values: POSTGRES, MYSQL, SQLLITE")
	}

	var db *sql.DB
	var err error
	switch databaseType {
	case config.DATABASE_TYPE_POSTGRES:
		db, err = setupPostgresDatabase()
	case config.DATABASE_TYPE_SQLLITE:
		db, err = setupSqlLiteDatabase()
	case config.DATABASE_TYPE_MYSQL:
		db, err = setupMysqlDatabase()
	}
	if err != nil {
		return nil, err
	}

	workflowRepo := repository.NewProjectWorkflowRepository(db)
	store := engine.NewDefinitionStore(workflowRepo, core.NewRealClock())
	resolver := engine.NewResolver(store)

	// first read installs the default workflow on a fresh database
	workflows, err := store.GetAll()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap workflows: %w", err)
	}
	slog.Info("Workflow engine ready", "workflows", len(workflows))

	return &Engine{Store: store, Resolver: resolver, db: db}, nil
}

func (e *Engine) Close() error {
	return e.db.Close()
}

func setupPostgresDatabase() (*sql.DB, error) {
	dbURL := config.GetSystemSettingString(config.DATABASE_URL)
	if dbURL == "" {
		panic("PFLOW_DATABASE_URL must be set when using the POSTGRES database type")
	}
	slog.Info("Using Postgres database", "url", dbURL)
	slog.Info("Running migrations")
	if err := runMigrationsFromEmbed("postgres", dbURL); err != nil {
		return nil, fmt.Errorf("db migration failed: %w", err)
	}
	slog.Info("Opening Postgres database")
	return sql.Open("postgres", dbURL)
}

func setupSqlLiteDatabase() (*sql.DB, error) {
	fileName := config.GetSystemSettingString(config.DATABASE_SQLLITE_FILE_NAME)
	if fileName == "" {
		panic("PFLOW_DATABASE_SQLLITE_FILE_NAME must be set")
	}
	dbURL := "sqlite3://" + fileName
	slog.Info("Using SQLite database", "file", fileName)
	slog.Info("Running migrations")
	if err := runMigrationsFromEmbed("sqllite3", dbURL); err != nil {
		return nil, fmt.Errorf("db migration failed: %w", err)
	}
	slog.Info("Opening SQLite database")
	db, err := sql.Open("sqlite3", fileName)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func setupMysqlDatabase() (*sql.DB, error) {
	dbURL := config.GetSystemSettingString(config.DATABASE_URL)
	if dbURL == "" {
		panic("PFLOW_DATABASE_URL must be set when using the MYSQL database type")
	}
	if !strings.Contains(dbURL, "parseTime=true") {
		panic("PFLOW_DATABASE_URL must contain 'parseTime=true' for MySQL")
	}
	if !strings.HasPrefix(dbURL, "mysql://") {
		panic("PFLOW_DATABASE_URL must start with 'mysql://' for MySQL")
	}

	slog.Info("Using MySQL database", "url", dbURL)
	slog.Info("Running migrations")
	if err := runMigrationsFromEmbed("mysql", dbURL); err != nil {
		return nil, fmt.Errorf("db migration failed: %w", err)
	}
	slog.Info("Opening MySQL database")
	return sql.Open("mysql", strings.Replace(dbURL, "mysql://", "", 1))
}

func runMigrationsFromEmbed(migrationsPath string, dbURL string) error {
	sub, err := fs.Sub(migrations.FS, migrationsPath)
	if err != nil {
		return err
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func SetupLogger() {
	w := os.Stderr
	level := slog.LevelInfo
	if config.GetSystemSettingString(config.LOG_LEVEL) == "DEBUG" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}
