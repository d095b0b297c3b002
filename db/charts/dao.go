// Package charts contains CRUD operations for saved chart definitions.
package charts

import (
	"context"
	"errors"
	"fmt"

	"chartdash/chart"
	"chartdash/db"
)

type (
	// Dao stores and retrieves chart definitions on a backend.
	Dao struct {
		backend Backend
	}

	// Backend performs the chart storage operations on a specific database.
	Backend interface {
		// Create adds the definition.  The id must not be in use.
		Create(ctx context.Context, d chart.Definition) error
		// Read gets the definition of the chart with the id.
		Read(ctx context.Context, id string) (*chart.Definition, error)
		// List gets the definitions of all saved charts.
		List(ctx context.Context) ([]chart.Definition, error)
		// Update replaces the definition of the chart with its id.
		Update(ctx context.Context, d chart.Definition) error
		// Delete removes the chart with the id.
		Delete(ctx context.Context, id string) error
	}
)

// NewDao creates a Dao on the specified backend.
func NewDao(backend Backend) (*Dao, error) {
	if err := validate(backend); err != nil {
		return nil, fmt.Errorf("creating chart dao: validation: %w", err)
	}
	d := Dao{
		backend: backend,
	}
	return &d, nil
}

// validate checks fields to set up the dao.
func validate(backend Backend) error {
	switch {
	case backend == nil:
		return fmt.Errorf("backend required")
	}
	return nil
}

// Backend returns the backend the dao stores charts on.
func (d Dao) Backend() Backend {
	return d.backend
}

// Save stores the definition, creating the chart if no saved chart has its id.
func (d Dao) Save(ctx context.Context, def chart.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	err := d.backend.Update(ctx, def)
	switch {
	case errors.Is(err, db.ErrNotFound):
		if err := d.backend.Create(ctx, def); err != nil {
			return fmt.Errorf("creating chart: %w", err)
		}
	case err != nil:
		return fmt.Errorf("updating chart: %w", err)
	}
	return nil
}

// Read gets the definition of the chart with the id.
func (d Dao) Read(ctx context.Context, id string) (*chart.Definition, error) {
	def, err := d.backend.Read(ctx, id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	return def, nil
}

// List gets the definitions of all saved charts.
func (d Dao) List(ctx context.Context) ([]chart.Definition, error) {
	defs, err := d.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	return defs, nil
}

// Delete removes the chart with the id.
func (d Dao) Delete(ctx context.Context, id string) error {
	if _, err := d.backend.Read(ctx, id); err != nil {
		return fmt.Errorf("checking chart: %w", err)
	}
	if err := d.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	return nil
}
