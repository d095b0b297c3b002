// Package dbtest contains mock storage utilities.
package dbtest

import (
	"context"

	"chartdash/chart"
)

// MockBackend implements the charts.Backend interface.
type MockBackend struct {
	// CreateFunc is called by Create.
	CreateFunc func(ctx context.Context, d chart.Definition) error
	// ReadFunc is called by Read.
	ReadFunc func(ctx context.Context, id string) (*chart.Definition, error)
	// ListFunc is called by List.
	ListFunc func(ctx context.Context) ([]chart.Definition, error)
	// UpdateFunc is called by Update.
	UpdateFunc func(ctx context.Context, d chart.Definition) error
	// DeleteFunc is called by Delete.
	DeleteFunc func(ctx context.Context, id string) error
}

// Create calls CreateFunc.
func (m MockBackend) Create(ctx context.Context, d chart.Definition) error {
	return m.CreateFunc(ctx, d)
}

// Read calls ReadFunc.
func (m MockBackend) Read(ctx context.Context, id string) (*chart.Definition, error) {
	return m.ReadFunc(ctx, id)
}

// List calls ListFunc.
func (m MockBackend) List(ctx context.Context) ([]chart.Definition, error) {
	return m.ListFunc(ctx)
}

// Update calls UpdateFunc.
func (m MockBackend) Update(ctx context.Context, d chart.Definition) error {
	return m.UpdateFunc(ctx, d)
}

// Delete calls DeleteFunc.
func (m MockBackend) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
