// Package mongo stores chart definitions on a mongodb server.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chartdash/chart"
	"chartdash/db"
)

const (
	databaseName    = "chartdash-db"
	collectionName  = "charts"
	idField         = "id"
	titleField      = "title"
	seriesField     = "seriesNames"
	maxSamplesField = "maxSamples"
)

type (
	// ChartBackend manages saved chart definitions in a charts collection.
	ChartBackend struct {
		Charts *mongo.Collection
		db.Config
	}

	// chartDocument is how a definition is stored in the collection.
	chartDocument struct {
		ID          string   `bson:"id"`
		Title       string   `bson:"title"`
		SeriesNames []string `bson:"seriesNames"`
		MaxSamples  int      `bson:"maxSamples"`
	}
)

// NewChartBackend connects to the database and creates a backend for the charts collection.
func NewChartBackend(ctx context.Context, cfg db.Config, databaseURL string) (*ChartBackend, error) {
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	charts := database.Collection(collectionName)
	b := ChartBackend{
		Charts: charts,
		Config: cfg,
	}
	return &b, nil
}

// Setup ensures chart ids are unique in the collection.
func (b *ChartBackend) Setup(ctx context.Context) error {
	indexOptions := options.Index()
	indexOptions.SetUnique(true)
	model := mongo.IndexModel{
		Keys:    d(e(idField, 1)),
		Options: indexOptions,
	}
	indexes := b.Charts.Indexes()
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	if _, err := indexes.CreateOne(ctx, model); err != nil {
		return fmt.Errorf("creating unique chart id index: %w", err)
	}
	return nil
}

// Create adds the definition.
func (b *ChartBackend) Create(ctx context.Context, def chart.Definition) error {
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	if _, err := b.Charts.InsertOne(ctx, document(def)); err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	return nil
}

// Read gets the definition of the chart with the id.
func (b *ChartBackend) Read(ctx context.Context, id string) (*chart.Definition, error) {
	filter := d(e(idField, id))
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	result := b.Charts.FindOne(ctx, filter)
	var doc chartDocument
	if err := result.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	def := doc.definition()
	return &def, nil
}

// List gets the definitions of all saved charts.
func (b *ChartBackend) List(ctx context.Context) ([]chart.Definition, error) {
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	cursor, err := b.Charts.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	var docs []chartDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding charts: %w", err)
	}
	defs := make([]chart.Definition, len(docs))
	for i, doc := range docs {
		defs[i] = doc.definition()
	}
	return defs, nil
}

// Update replaces the definition of the chart with its id.
func (b *ChartBackend) Update(ctx context.Context, def chart.Definition) error {
	filter := d(e(idField, def.ID))
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	result, err := b.Charts.ReplaceOne(ctx, filter, document(def))
	switch {
	case err != nil:
		return fmt.Errorf("updating chart: %w", err)
	case result.MatchedCount == 0:
		return db.ErrNotFound
	}
	return nil
}

// Delete removes the chart.
func (b *ChartBackend) Delete(ctx context.Context, id string) error {
	filter := d(e(idField, id))
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	if _, err := b.Charts.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	return nil
}

// document converts the definition to its stored form.
func document(def chart.Definition) bson.D {
	return d(
		e(idField, def.ID),
		e(titleField, def.Title),
		e(seriesField, def.SeriesNames),
		e(maxSamplesField, def.MaxSamples),
	)
}

// definition converts the stored form back to a definition.
func (doc chartDocument) definition() chart.Definition {
	return chart.Definition{
		ID:          doc.ID,
		Title:       doc.Title,
		SeriesNames: doc.SeriesNames,
		MaxSamples:  doc.MaxSamples,
	}
}

// d is a helper function to create bson.D documents.
func d(e ...bson.E) bson.D {
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
