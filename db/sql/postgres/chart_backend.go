// Package postgres stores chart definitions on a Postgres server.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lib/pq"

	"chartdash/chart"
	"chartdash/db"
	"chartdash/db/sql"
)

// DriverName is the name the postgres driver registers itself under.
const DriverName = "postgres"

type (
	// ChartBackend manages saved chart definitions on a Postgres database.
	ChartBackend struct {
		Database
	}

	// Database runs queries against the chart tables.
	Database interface {
		// Setup initializes the database by reading the files.
		Setup(ctx context.Context, files []io.Reader) error
		// Query reads a single row into the destination values.
		Query(ctx context.Context, q sql.Query, dest ...interface{}) error
		// QueryRows reads multiple rows, calling scan for each one.
		QueryRows(ctx context.Context, q sql.Query, scan func(row sql.Scanner) error) error
		// Exec makes a change to existing data, creating/modifying/removing it.
		Exec(ctx context.Context, queries ...sql.Query) error
	}
)

// chartCols are the columns returned by the chart query functions.
var chartCols = []string{
	"id",
	"title",
	"series_names",
	"max_samples",
}

// Create adds the definition.
func (b *ChartBackend) Create(ctx context.Context, d chart.Definition) error {
	q := sql.NewExecFunction("chart_create", d.ID, d.Title, pq.Array(d.SeriesNames), d.MaxSamples)
	if err := b.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	return nil
}

// Read queries the database for the chart by id.
func (b *ChartBackend) Read(ctx context.Context, id string) (*chart.Definition, error) {
	q := sql.NewQueryFunction("chart_read", chartCols, id)
	var d chart.Definition
	if err := b.Database.Query(ctx, q, &d.ID, &d.Title, pq.Array(&d.SeriesNames), &d.MaxSamples); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("querying chart: %w", err)
	}
	return &d, nil
}

// List queries the database for all saved charts.
func (b *ChartBackend) List(ctx context.Context) ([]chart.Definition, error) {
	q := sql.NewQueryFunction("chart_list", chartCols)
	var defs []chart.Definition
	err := b.Database.QueryRows(ctx, q, func(row sql.Scanner) error {
		var d chart.Definition
		if err := row.Scan(&d.ID, &d.Title, pq.Array(&d.SeriesNames), &d.MaxSamples); err != nil {
			return err
		}
		defs = append(defs, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying charts: %w", err)
	}
	return defs, nil
}

// Update replaces the definition of the chart with its id.
func (b *ChartBackend) Update(ctx context.Context, d chart.Definition) error {
	if _, err := b.Read(ctx, d.ID); err != nil {
		return err
	}
	q := sql.NewExecFunction("chart_update", d.ID, d.Title, pq.Array(d.SeriesNames), d.MaxSamples)
	if err := b.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("updating chart: %w", err)
	}
	return nil
}

// Delete removes the chart.
func (b *ChartBackend) Delete(ctx context.Context, id string) error {
	q := sql.NewExecFunction("chart_delete", id)
	if err := b.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	return nil
}
