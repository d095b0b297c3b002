package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq" // register "postgres" database driver from package init() function

	"chartdash/db"
	"chartdash/db/charts"
	"chartdash/db/firestore"
	"chartdash/db/mongo"
	"chartdash/db/sql"
	"chartdash/db/sql/postgres"
	"chartdash/server"
	"chartdash/server/auth"
	"chartdash/server/feed"
	"chartdash/server/feed/gorilla"
	"chartdash/server/log"
)

// dbQueryPeriod is the amount of time each chart database operation may take before it is cancelled.
const dbQueryPeriod = 5 * time.Second

// setupSQLFileNames are the files to run when setting up the postgres backend, in order.
var setupSQLFileNames = []string{
	"charts.sql",
	"chart_create.sql",
	"chart_read.sql",
	"chart_list.sql",
	"chart_update.sql",
	"chart_delete.sql",
}

// createServer creates the server from the parsed flags and embedded files.
func createServer(ctx context.Context, m mainFlags, log log.Logger, e embeddedData) (*server.Server, error) {
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	tokenizer, err := tokenizerConfig(crypto_rand.Reader, timeFunc).NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("creating authentication tokenizer: %w", err)
	}
	backend, err := chartBackend(ctx, m, e)
	if err != nil {
		return nil, fmt.Errorf("creating chart backend: %w", err)
	}
	dao, err := charts.NewDao(backend)
	if err != nil {
		return nil, fmt.Errorf("creating chart dao: %w", err)
	}
	f, err := feedConfig(m, log, timeFunc).New(feed.RuntimeSources()...)
	if err != nil {
		return nil, fmt.Errorf("creating metrics feed: %w", err)
	}
	ph := auth.NewBcryptPasswordHandler()
	hash, err := editorPasswordHash(m, ph, log)
	if err != nil {
		return nil, fmt.Errorf("creating editor password hash: %w", err)
	}
	cfg := server.Config{
		HTTPPort:  m.httpPort,
		HTTPSPort: m.httpsPort,
		StopDur:   time.Second,
		CacheSec:  m.cacheSec,
		Version:   e.Version,
		Challenge: server.Challenge{
			Token: m.challengeToken,
			Key:   m.challengeKey,
		},
		TLSCertFile:   m.tlsCertFile,
		TLSKeyFile:    m.tlsKeyFile,
		NoTLSRedirect: m.noTLSRedirect,
	}
	p := server.Parameters{
		Logger:             log,
		Tokenizer:          tokenizer,
		ChartDao:           dao,
		Feed:               f,
		Upgrader:           feedUpgrader{gorilla.NewUpgrader()},
		PasswordHandler:    ph,
		EditorPasswordHash: hash,
		StaticFS:           e.StaticFS,
		TemplateFS:         e.TemplateFS,
	}
	return cfg.NewServer(p)
}

// feedUpgrader narrows the gorilla upgrader's connections to the interface the server consumes.
type feedUpgrader struct {
	*gorilla.Upgrader
}

func (u feedUpgrader) Upgrade(w http.ResponseWriter, r *http.Request) (feed.Conn, error) {
	return u.Upgrader.Upgrade(w, r)
}

// tokenizerConfig creates the configuration for the editing session token reader/writer.
func tokenizerConfig(keyReader io.Reader, timeFunc func() int64) auth.TokenizerConfig {
	var tokenValidDurationSec int64 = int64((24 * time.Hour).Seconds()) // 1 day
	cfg := auth.TokenizerConfig{
		KeyReader: keyReader,
		TimeFunc:  timeFunc,
		ValidSec:  tokenValidDurationSec,
	}
	return cfg
}

// feedConfig creates the configuration for the metrics feed.
func feedConfig(m mainFlags, log log.Logger, timeFunc func() int64) feed.Config {
	cfg := feed.Config{
		Log:            log,
		SamplePeriod:   m.samplePeriod,
		PingPeriod:     15 * time.Second,
		HTTPPingPeriod: 10 * time.Minute,
		MaxSamples:     60,
		TimeFunc:       timeFunc,
	}
	return cfg
}

// editorPasswordHash resolves the hash that chart-editing logins are checked against.
// A hash of a discarded random password is used when none is configured, disabling logins.
func editorPasswordHash(m mainFlags, ph auth.BcryptPasswordHandler, log log.Logger) ([]byte, error) {
	if len(m.editorPasswordHash) != 0 {
		return []byte(m.editorPasswordHash), nil
	}
	var b [32]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("generating random password: %w", err)
	}
	log.Printf("no editor password hash configured, chart editing is disabled")
	return ph.Hash(hex.EncodeToString(b[:]))
}

// chartBackend creates the chart storage for the data source.
// The scheme of the data source url selects the backend type.
func chartBackend(ctx context.Context, m mainFlags, e embeddedData) (charts.Backend, error) {
	if len(m.databaseURL) == 0 {
		return charts.NoDatabaseBackend{}, nil
	}
	u, err := url.Parse(m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing data source url: %w", err)
	}
	cfg := db.Config{
		QueryPeriod: dbQueryPeriod,
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return postgresChartBackend(ctx, cfg, m.databaseURL, e.SQLFS)
	case "mongodb", "mongodb+srv":
		return mongoChartBackend(ctx, cfg, m.databaseURL)
	case "firestore":
		return firestore.NewChartBackend(ctx, cfg, u.Host)
	}
	return nil, fmt.Errorf("unknown data source scheme: %v", u.Scheme)
}

// postgresChartBackend opens the postgres database and runs the embedded setup queries.
func postgresChartBackend(ctx context.Context, cfg db.Config, databaseURL string, sqlFS fs.FS) (*postgres.ChartBackend, error) {
	dbCfg := sql.DatabaseConfig{
		DriverName:  postgres.DriverName,
		DatabaseURL: databaseURL,
		QueryPeriod: cfg.QueryPeriod,
	}
	sqlDB, err := dbCfg.NewDatabase()
	if err != nil {
		return nil, fmt.Errorf("creating sql database: %w", err)
	}
	files, err := setupSQLFiles(sqlFS)
	if err != nil {
		return nil, fmt.Errorf("reading setup queries: %w", err)
	}
	if err := sqlDB.Setup(ctx, files); err != nil {
		return nil, fmt.Errorf("setting up database: %w", err)
	}
	b := postgres.ChartBackend{
		Database: sqlDB,
	}
	return &b, nil
}

// mongoChartBackend connects to the mongo server and ensures the chart collection indexes exist.
func mongoChartBackend(ctx context.Context, cfg db.Config, databaseURL string) (*mongo.ChartBackend, error) {
	b, err := mongo.NewChartBackend(ctx, cfg, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := b.Setup(ctx); err != nil {
		return nil, fmt.Errorf("setting up collection: %w", err)
	}
	return b, nil
}

// setupSQLFiles opens the setup queries in the order they must run.
func setupSQLFiles(sqlFS fs.FS) ([]io.Reader, error) {
	files := make([]io.Reader, 0, len(setupSQLFileNames))
	for _, n := range setupSQLFileNames {
		f, err := sqlFS.Open(n)
		if err != nil {
			return nil, fmt.Errorf("opening setup query file: %w", err)
		}
		files = append(files, f)
	}
	return files, nil
}

// cleanVersion returns the whitespace-trimmed version, requiring it to be a single word.
func cleanVersion(v string) (string, error) {
	fields := strings.Fields(v)
	switch {
	case len(fields) == 0:
		return "", fmt.Errorf("no words in version")
	case len(fields) > 1:
		return "", fmt.Errorf("wanted version to be a single word, got %q", v)
	}
	return fields[0], nil
}
