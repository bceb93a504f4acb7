// Package app initializes and runs the identity store administration
// process: it connects to PostgreSQL with retry, applies the embedded
// schema migrations, and verifies the published storage layout.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idclxvi/identity-store/internal/config"
	"github.com/idclxvi/identity-store/internal/identity/repositories/repomanager"
	"github.com/idclxvi/identity-store/internal/identity/store"
	"github.com/idclxvi/identity-store/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

// tables and constraints a migrated database must expose. External
// migration tooling reproduces these names exactly, so their presence is
// checked after every migration run.
var (
	contractTables = []string{
		"users", "roles", "user_claims", "users_login",
		"users_tokens", "users_roles", "role_claims",
	}
	contractConstraints = []string{
		"users_pk", "roles_pk", "users_claims_pk", "users_login_pk",
		"users_tokens_pk", "users_roles_pk", "role_claims_pk",
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rm     repomanager.RepositoryManager
	store  *store.Store
}

func NewApp(cfg *config.Config) (*App, error) {

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := logging.NewSlogLogger(slog.New(handler))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		rm:     rm,
		store:  store.New(db, rm, logger),
	}, nil
}

// Store returns the store facade bound to this app's connection, for
// embedding the identity model in-process.
func (app *App) Store() *store.Store {
	return app.store
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// connect pings the database with exponential backoff until it answers or
// the configured timeout elapses.
func (app *App) connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, app.config.ConnectTimeout)
	defer cancel()

	backoff := retry.NewExponential(250 * time.Millisecond)
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Debug(ctx, "db not ready", "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
}

// verifySchema checks that the migrated database exposes the contract
// table names and primary-key constraint names.
func (app *App) verifySchema(ctx context.Context) error {

	query :=
		`SELECT count(*) FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name = ANY($1)
		 `
	var tables int
	if err := app.db.QueryRowContext(ctx, query, contractTables).Scan(&tables); err != nil {
		return fmt.Errorf("schema check error: %w", err)
	}
	if tables != len(contractTables) {
		return fmt.Errorf("schema check: %d of %d contract tables present", tables, len(contractTables))
	}

	query =
		`SELECT count(*) FROM pg_constraint
		 WHERE conname = ANY($1)
		 `
	var constraints int
	if err := app.db.QueryRowContext(ctx, query, contractConstraints).Scan(&constraints); err != nil {
		return fmt.Errorf("schema check error: %w", err)
	}
	if constraints != len(contractConstraints) {
		return fmt.Errorf("schema check: %d of %d contract constraints present", constraints, len(contractConstraints))
	}

	// a read through the store confirms queries run against the new schema
	if _, err := app.store.ListRoles(ctx); err != nil {
		return fmt.Errorf("schema check: role listing failed: %w", err)
	}

	return nil
}

func (app *App) Run(ctx context.Context) (err error) {

	defer func() {
		if cerr := app.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "connecting", "timeout", app.config.ConnectTimeout.String())
	if err := app.connect(ctx); err != nil {
		return fmt.Errorf("db connect error: %w", err)
	}

	app.logger.Info(ctx, "applying migrations")
	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if !app.config.MigrateOnly {
		app.logger.Info(ctx, "verifying storage layout")
		if err := app.verifySchema(ctx); err != nil {
			return err
		}
	}

	app.logger.Info(ctx, "identity schema ready")
	return nil
}
