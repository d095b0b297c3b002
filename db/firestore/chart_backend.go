// Package firestore stores chart definitions on a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"chartdash/chart"
	"chartdash/db"
)

// ChartBackend manages saved chart definitions in a charts collection.
type ChartBackend struct {
	client *firestore.Client
	db.Config
}

// chartDocument is how a definition is stored in the collection.
// The chart id is the document name.
type chartDocument struct {
	Title       string   `firestore:"title"`
	SeriesNames []string `firestore:"seriesNames"`
	MaxSamples  int      `firestore:"maxSamples"`
}

// NewChartBackend creates a backend for charts on the firestore project.
func NewChartBackend(ctx context.Context, cfg db.Config, projectID string) (*ChartBackend, error) {
	b := ChartBackend{
		Config: cfg,
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client is used by the backend
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	b.client = client
	return &b, nil
}

func (b *ChartBackend) chartsCollection() *firestore.CollectionRef {
	return b.client.Collection("services").Doc("chartdash").Collection("charts")
}

// withTimeoutContext configures the context to timeout when running the function.
func (b *ChartBackend) withTimeoutContext(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	return f(ctx)
}

// Create adds the definition.
func (b *ChartBackend) Create(ctx context.Context, def chart.Definition) error {
	if err := b.withTimeoutContext(ctx, func(ctx context.Context) error {
		charts := b.chartsCollection()
		docRef := charts.Doc(def.ID)
		_, err := docRef.Create(ctx, document(def)) // returns an error if the chart already exists
		return err
	}); err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	return nil
}

// Read gets the definition of the chart with the id.
func (b *ChartBackend) Read(ctx context.Context, id string) (*chart.Definition, error) {
	var def chart.Definition
	if err := b.withTimeoutContext(ctx, func(ctx context.Context) error {
		charts := b.chartsCollection()
		docRef := charts.Doc(id)
		snapshot, err := docRef.Get(ctx)
		if err != nil {
			if snapshot != nil && !snapshot.Exists() {
				return db.ErrNotFound
			}
			return err
		}
		var doc chartDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return err
		}
		def = doc.definition(id)
		return nil
	}); err != nil {
		if err == db.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	return &def, nil
}

// List gets the definitions of all saved charts.
func (b *ChartBackend) List(ctx context.Context) ([]chart.Definition, error) {
	var defs []chart.Definition
	if err := b.withTimeoutContext(ctx, func(ctx context.Context) error {
		charts := b.chartsCollection()
		snapshots, err := charts.Documents(ctx).GetAll()
		if err != nil {
			return err
		}
		defs = make([]chart.Definition, len(snapshots))
		for i, snapshot := range snapshots {
			var doc chartDocument
			if err := snapshot.DataTo(&doc); err != nil {
				return err
			}
			defs[i] = doc.definition(snapshot.Ref.ID)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	return defs, nil
}

// Update replaces the definition of the chart with its id.
func (b *ChartBackend) Update(ctx context.Context, def chart.Definition) error {
	if _, err := b.Read(ctx, def.ID); err != nil {
		return err
	}
	if err := b.withTimeoutContext(ctx, func(ctx context.Context) error {
		charts := b.chartsCollection()
		docRef := charts.Doc(def.ID)
		_, err := docRef.Set(ctx, document(def))
		return err
	}); err != nil {
		return fmt.Errorf("updating chart: %w", err)
	}
	return nil
}

// Delete removes the chart.
func (b *ChartBackend) Delete(ctx context.Context, id string) error {
	if err := b.withTimeoutContext(ctx, func(ctx context.Context) error {
		charts := b.chartsCollection()
		docRef := charts.Doc(id)
		_, err := docRef.Delete(ctx, firestore.Exists)
		return err
	}); err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	return nil
}

// document converts the definition to its stored form.
func document(def chart.Definition) chartDocument {
	return chartDocument{
		Title:       def.Title,
		SeriesNames: def.SeriesNames,
		MaxSamples:  def.MaxSamples,
	}
}

// definition converts the stored form back to a definition.
func (doc chartDocument) definition(id string) chart.Definition {
	return chart.Definition{
		ID:          id,
		Title:       doc.Title,
		SeriesNames: doc.SeriesNames,
		MaxSamples:  doc.MaxSamples,
	}
}
