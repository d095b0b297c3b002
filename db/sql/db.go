// Package sql stores chart definitions on a SQL database.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"
)

type (
	// Database runs queries on a SQL database, applying a timeout to each operation.
	Database struct {
		DB *sql.DB
		DatabaseConfig
	}

	// DatabaseConfig contains the parameters to create a Database.
	DatabaseConfig struct {
		// DriverName is the name of the registered database/sql driver to connect with.
		DriverName string
		// DatabaseURL is the data source the driver connects to.
		DatabaseURL string
		// QueryPeriod is the amount of time each query may take before it is cancelled.
		QueryPeriod time.Duration
	}

	// Scanner reads a row of data from the database.
	Scanner interface {
		// Scan reads the row into the destination values.
		Scan(dest ...interface{}) error
	}

	// Query is a message that is sent to the database.
	Query interface {
		// Cmd is the injection-safe message to send to the database.
		Cmd() string
		// Args are the user-provided values of the message, which are escaped by the driver.
		Args() []interface{}
	}
)

// ErrNoRows is returned by Query when no row matches.
var ErrNoRows = sql.ErrNoRows

// NewDatabase opens the database.
func (cfg DatabaseConfig) NewDatabase() (*Database, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating sql database: validation: %w", err)
	}
	sqlDB, err := sql.Open(cfg.DriverName, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db := Database{
		DB:             sqlDB,
		DatabaseConfig: cfg,
	}
	return &db, nil
}

// validate ensures the configuration has no errors.
func (cfg DatabaseConfig) validate() error {
	switch {
	case len(cfg.DriverName) == 0:
		return fmt.Errorf("driver name required")
	case len(cfg.DatabaseURL) == 0:
		return fmt.Errorf("database url required")
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// Setup initializes the database by executing the contents of the files as raw queries.
func (db Database) Setup(ctx context.Context, files []io.Reader) error {
	queries := make([]Query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = RawQuery(b)
	}
	if err := db.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries: %w", err)
	}
	return nil
}

// Query queries a single row, scanning it into the destination values.
// ErrNoRows is returned when no row matches.
func (db Database) Query(ctx context.Context, q Query, dest ...interface{}) error {
	ctx, cancelFunc := context.WithTimeout(ctx, db.QueryPeriod)
	defer cancelFunc()
	row := db.DB.QueryRowContext(ctx, q.Cmd(), q.Args()...)
	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("scanning row: %w", err)
	}
	return nil
}

// QueryRows queries multiple rows, calling scan for each one.
func (db Database) QueryRows(ctx context.Context, q Query, scan func(row Scanner) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, db.QueryPeriod)
	defer cancelFunc()
	rows, err := db.DB.QueryContext(ctx, q.Cmd(), q.Args()...)
	if err != nil {
		return fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

// Exec evaluates the queries in a transaction, ensuring each ExecFunction updates exactly one row.
func (db Database) Exec(ctx context.Context, queries ...Query) error {
	ctx, cancelFunc := context.WithTimeout(ctx, db.QueryPeriod)
	defer cancelFunc()
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for i, q := range queries {
		result, err := tx.ExecContext(ctx, q.Cmd(), q.Args()...)
		if f, ok := q.(ExecFunction); err == nil && ok {
			var n int64
			n, err = result.RowsAffected()
			if err == nil && n != 1 {
				err = fmt.Errorf("wanted to update 1 row, but updated %d when calling %s", n, f.name)
			}
		}
		if err != nil {
			err = fmt.Errorf("executing query %v: %w", i, err)
			if err2 := tx.Rollback(); err2 != nil {
				return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
