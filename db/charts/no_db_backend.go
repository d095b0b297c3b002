package charts

import (
	"context"
	"fmt"

	"chartdash/chart"
	"chartdash/db"
)

// NoDatabaseBackend is used when the server runs without a database.
// The live feed still works, but charts cannot be saved.
type NoDatabaseBackend struct{}

// Create returns an error.
func (b NoDatabaseBackend) Create(ctx context.Context, d chart.Definition) error {
	return fmt.Errorf("no database to save charts")
}

// Read returns ErrNotFound.
func (b NoDatabaseBackend) Read(ctx context.Context, id string) (*chart.Definition, error) {
	return nil, db.ErrNotFound
}

// List returns no definitions.
func (b NoDatabaseBackend) List(ctx context.Context) ([]chart.Definition, error) {
	return nil, nil
}

// Update returns an error.
func (b NoDatabaseBackend) Update(ctx context.Context, d chart.Definition) error {
	return fmt.Errorf("no database to update charts")
}

// Delete returns an error.
func (b NoDatabaseBackend) Delete(ctx context.Context, id string) error {
	return fmt.Errorf("no database to delete charts")
}
