// Package postgresdb is the PostgreSQL implementation of the client storage.
// The schema is applied with goose on start, from the embedded migrations or
// from a directory given in the configuration.
package postgresdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/patric-chuzhbe/nexusweb/internal/db/storage"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type initOptions struct {
	DBPreReset    bool
	MigrationsDir string
}

// InitOption configures New.
type InitOption func(*initOptions)

// WithDBPreReset drops the client storage table before migrating. Tests only.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// WithMigrationsDir reads migrations from a directory instead of the embedded set.
func WithMigrationsDir(dir string) InitOption {
	return func(options *initOptions) {
		options.MigrationsDir = dir
	}
}

// New opens the database and applies the migrations.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, fmt.Errorf("in internal/db/postgresdb/postgresdb.go/New(): error while `sql.Open()` calling: %w", err)
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := result.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("in internal/db/postgresdb/postgresdb.go/New(): error while `result.Ping()` calling: %w", err)
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			return nil, err
		}
	}

	if err := result.migrate(ctx, options.MigrationsDir); err != nil {
		return nil, err
	}

	return result, nil
}

func (db *PostgresDB) migrate(ctx context.Context, migrationsDir string) error {
	if migrationsDir == "" {
		goose.SetBaseFS(embeddedMigrations)
		migrationsDir = "migrations"
	} else {
		goose.SetBaseFS(nil)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("in internal/db/postgresdb/postgresdb.go/migrate(): error while `goose.SetDialect()` calling: %w", err)
	}

	if err := goose.UpContext(ctx, db.database, migrationsDir); err != nil {
		return fmt.Errorf("in internal/db/postgresdb/postgresdb.go/migrate(): error while `goose.UpContext()` calling: %w", err)
	}

	return nil
}

func (db *PostgresDB) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, storage.ErrEmptyNamespace
	}

	row := db.database.QueryRowContext(
		ctx,
		`SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`,
		namespace,
		key,
	)
	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("in internal/db/postgresdb/postgresdb.go/GetItem(): error while `row.Scan()` calling: %w", err)
	}

	return value, true, nil
}

func (db *PostgresDB) SetItem(ctx context.Context, namespace, key, value string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}

	_, err := db.database.ExecContext(
		ctx,
		`
			INSERT INTO client_storage (namespace, key, value)
				VALUES ($1, $2, $3)
				ON CONFLICT (namespace, key) DO UPDATE
				SET
					value = EXCLUDED.value,
					updated_at = now();
		`,
		namespace,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("in internal/db/postgresdb/postgresdb.go/SetItem(): error while `db.database.ExecContext()` calling: %w", err)
	}

	return nil
}

func (db *PostgresDB) RemoveItem(ctx context.Context, namespace, key string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}

	_, err := db.database.ExecContext(
		ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = $2`,
		namespace,
		key,
	)
	if err != nil {
		return fmt.Errorf("in internal/db/postgresdb/postgresdb.go/RemoveItem(): error while `db.database.ExecContext()` calling: %w", err)
	}

	return nil
}

// Ping checks connectivity within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

func (db *PostgresDB) Close() error {
	return db.database.Close()
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			DROP TABLE IF EXISTS client_storage;
			DROP TABLE IF EXISTS goose_db_version;
		`,
	)
	if err != nil {
		return fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/resetDB(): error while `db.database.ExecContext()` calling: %w",
			err,
		)
	}
	return nil
}
