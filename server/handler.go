package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"chartdash/chart"
	"chartdash/db/charts"
	"chartdash/server/feed"
	"chartdash/server/log"
)

type (
	// Parameters contains the interfaces needed to create a new server.
	Parameters struct {
		log.Logger
		Tokenizer
		ChartDao
		Feed
		Upgrader
		PasswordHandler
		// EditorPasswordHash is the hash of the password that allows saving charts.
		EditorPasswordHash []byte
		// StaticFS contains files that are served as-is.
		StaticFS fs.FS
		// TemplateFS contains files that are rendered with the template data.
		TemplateFS fs.FS
	}

	// Tokenizer creates and reads editing session tokens.
	Tokenizer interface {
		Create(subject string) (string, error)
		ReadSubject(tokenString string) (string, error)
	}

	// ChartDao stores and retrieves saved chart definitions.
	ChartDao interface {
		Save(ctx context.Context, d chart.Definition) error
		List(ctx context.Context) ([]chart.Definition, error)
		Delete(ctx context.Context, id string) error
		Backend() charts.Backend
	}

	// Feed samples metrics and broadcasts them to subscribed connections.
	Feed interface {
		Run(ctx context.Context, wg *sync.WaitGroup)
		Subscribe(ctx context.Context, conn feed.Conn) error
	}

	// Upgrader converts http requests to websocket connections.
	Upgrader interface {
		Upgrade(w http.ResponseWriter, r *http.Request) (feed.Conn, error)
	}

	// PasswordHandler checks the editor password against its stored hash.
	PasswordHandler interface {
		IsCorrect(hashedPassword []byte, password string) (bool, error)
	}

	// templateData is the data rendered into the site templates.
	templateData struct {
		Name        string
		Description string
		Version     string
		HasChartDB  bool
	}
)

const (
	// HeaderContentType is used to set the document type header on http responses.
	HeaderContentType = "Content-Type"
	// HeaderCacheControl is used to tell browsers how long to cache http responses.
	HeaderCacheControl = "Cache-Control"
	// HeaderStrictTransportSecurity is used to tell browsers the site should only be accessed using HTTPS.
	HeaderStrictTransportSecurity = "Strict-Transport-Security"
	// HeaderLocation is used to tell browsers to request a different document.
	HeaderLocation = "Location"
	// HeaderAcceptEncoding is specified by the browser to tell the server what types of document encoding it can handle.
	HeaderAcceptEncoding = "Accept-Encoding"
	// HeaderContentEncoding is used to tell browsers how the document is encoded.
	HeaderContentEncoding = "Content-Encoding"
	// rootTemplatePath is the name of the template for the root of the site.
	rootTemplatePath = "/index.html"
)

// validate ensures that all of the parameters are present.
func (p Parameters) validate() error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("log required")
	case p.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case p.ChartDao == nil:
		return fmt.Errorf("chart dao required")
	case p.Feed == nil:
		return fmt.Errorf("feed required")
	case p.Upgrader == nil:
		return fmt.Errorf("upgrader required")
	case p.PasswordHandler == nil:
		return fmt.Errorf("password handler required")
	case len(p.EditorPasswordHash) == 0:
		return fmt.Errorf("editor password hash required")
	case p.StaticFS == nil:
		return fmt.Errorf("static file system required")
	case p.TemplateFS == nil:
		return fmt.Errorf("template file system required")
	}
	return nil
}

// parseTemplate parses the whole template file system to create a template.
func (p Parameters) parseTemplate() (*template.Template, error) {
	t, err := template.ParseFS(p.TemplateFS, "*")
	if err != nil {
		return nil, fmt.Errorf("parsing template file system: %v", err)
	}
	return t, nil
}

// newTemplateData configures the structure of variables to insert into templates.
func (cfg Config) newTemplateData(p Parameters) *templateData {
	_, noChartDB := p.ChartDao.Backend().(charts.NoDatabaseBackend)
	data := templateData{
		Name:        "chartdash",
		Description: "a live dashboard of runtime metrics",
		Version:     cfg.Version,
		HasChartDB:  !noChartDB,
	}
	return &data
}

// httpHandler creates a handler for HTTP endpoints.
func (cfg Config) httpHandler(httpsRedirectHandler http.Handler) http.Handler {
	httpMux := http.NewServeMux()
	httpMux.Handle(acmePath, acmeChallengeHandler(cfg.Challenge))
	httpMux.Handle("/", httpsRedirectHandler)
	return httpMux
}

// httpsHandler creates a handler for HTTPS endpoints.
// Non-TLS requests are redirected to HTTPS.  GET and POST requests are handled by more specific handlers.
func (cfg Config) httpsHandler(httpHandler, httpsRedirectHandler http.Handler, p Parameters, template *template.Template, monitor http.Handler) http.HandlerFunc {
	getHandler := p.getHandler(cfg, template, monitor)
	postHandler := p.postHandler()
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.TLS == nil && !cfg.NoTLSRedirect:
			httpHandler.ServeHTTP(w, r)
		case r.TLS == nil && cfg.NoTLSRedirect && !hasSecHeader(r):
			httpsRedirectHandler.ServeHTTP(w, r)
		case r.Method == "GET":
			getHandler.ServeHTTP(w, r)
		case r.Method == "POST":
			postHandler.ServeHTTP(w, r)
		default:
			httpError(w, http.StatusMethodNotAllowed)
		}
	}
}

// getHandler forwards calls to various endpoints.
func (p Parameters) getHandler(cfg Config, template *template.Template, monitor http.Handler) http.Handler {
	cacheMaxAge := fmt.Sprintf("max-age=%d", cfg.CacheSec)
	data := cfg.newTemplateData(p)
	templateFileHandler := templateHandler(template, *data, p.Logger)
	staticFileHandler := http.FileServer(http.FS(p.StaticFS))
	templateHandler := fileHandler(templateFileHandler, cacheMaxAge, cfg.Version)
	staticHandler := fileHandler(staticFileHandler, cacheMaxAge, cfg.Version)
	templatePatterns := []string{rootTemplatePath}
	staticPatterns := []string{"/wasm_exec.js", "/main.wasm", "/robots.txt", "/favicon.svg"}

	getMux := http.NewServeMux()
	for _, pattern := range templatePatterns {
		getMux.Handle(pattern, templateHandler)
	}
	for _, pattern := range staticPatterns {
		getMux.Handle(pattern, staticHandler)
	}
	getMux.Handle("/feed", feedConnectHandler(p.Feed, p.Upgrader, p.Logger))
	getMux.Handle("/charts", chartListHandler(p.ChartDao, p.Logger))
	getMux.Handle("/monitor", monitor)
	return rootHandler(getMux)
}

// postHandler checks authentication and calls handlers for POST endpoints.
func (p Parameters) postHandler() http.Handler {
	postMux := http.NewServeMux()
	postMux.Handle("/login", loginHandler(p.EditorPasswordHash, p.PasswordHandler, p.Tokenizer, p.Logger))
	postMux.Handle("/chart_save", chartSaveHandler(p.ChartDao, p.Logger))
	postMux.Handle("/chart_delete", chartDeleteHandler(p.ChartDao, p.Logger))
	postMux.Handle("/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// NOOP
	}))
	return authHandler(postMux, p.Tokenizer, p.Logger)
}

// rootHandler maps requests for / to /index.html.
func rootHandler(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			r.URL.Path = rootTemplatePath
		}
		h.ServeHTTP(w, r)
	}
}

// authHandler checks the token of the request before running the child handler.
func authHandler(h http.Handler, tokenizer Tokenizer, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login", "/ping":
			// [unauthenticated]
		default:
			authorization := r.Header.Get("Authorization")
			if _, err := getToken(authorization, tokenizer); err != nil {
				log.Printf("unauthorized request: %v", err)
				httpError(w, http.StatusForbidden)
				return
			}
		}
		h.ServeHTTP(w, r)
	}
}

// getToken retrieves the subject in the authorization header.
func getToken(authorization string, tokenizer Tokenizer) (string, error) {
	if len(authorization) < 7 || authorization[:7] != "Bearer " {
		return "", fmt.Errorf("invalid authorization header: %v", authorization)
	}
	tokenString := authorization[7:]
	subject, err := tokenizer.ReadSubject(tokenString)
	if err != nil {
		return "", fmt.Errorf("reading token info: %w", err)
	}
	return subject, nil
}

// fileHandler wraps the handling of the file, adding cache busting, cache-control headers, and gzip compression.
func fileHandler(h http.Handler, cacheMaxAge, version string) http.HandlerFunc {
	cacheControl := func(r *http.Request) string {
		switch r.URL.Path {
		case rootTemplatePath:
			return "no-store"
		}
		return cacheMaxAge
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != rootTemplatePath && r.URL.Query().Get("v") != version {
			url := *r.URL
			q := url.Query()
			q.Set("v", version)
			url.RawQuery = q.Encode()
			w.Header().Set(HeaderLocation, url.String())
			w.WriteHeader(http.StatusMovedPermanently)
			return
		}
		if strings.Contains(r.Header.Get(HeaderAcceptEncoding), "gzip") {
			w2 := gzip.NewWriter(w)
			defer w2.Close()
			w = wrappedResponseWriter{
				Writer:         w2,
				ResponseWriter: w,
			}
			w.Header().Add(HeaderContentEncoding, "gzip")
		}
		w.Header().Set(HeaderCacheControl, cacheControl(r))
		w.Header().Set(HeaderStrictTransportSecurity, cacheMaxAge)
		addMimeType(r.URL.Path, w)
		h.ServeHTTP(w, r)
	}
}

// templateHandler serves the file from the data-driven template.  The name is assumed to have a leading slash that is ignored.
// Templates are written to a buffer to ensure they execute correctly before they are written to the response.
func templateHandler(template *template.Template, data templateData, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[1:] // ignore leading slash
		var buf bytes.Buffer
		if err := template.ExecuteTemplate(&buf, name, data); err != nil {
			err = fmt.Errorf("rendering template: %v", err)
			writeInternalError(err, log, w)
			return
		}
		w.Write(buf.Bytes())
	}
}

// httpsRedirectHandler redirects the request to https.
func httpsRedirectHandler(httpsPort int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		// derived from net.SplitHostPort, but does not throw an error
		lastColonIndex := strings.LastIndex(host, ":")
		if lastColonIndex >= 0 {
			host = host[:lastColonIndex]
		}
		if httpsPort != 443 {
			host += fmt.Sprintf(":%d", httpsPort)
		}
		httpsURI := "https://" + host + r.URL.Path
		http.Redirect(w, r, httpsURI, http.StatusMovedPermanently)
	}
}

// writeInternalError logs and writes the error as an internal server error (500).
func writeInternalError(err error, log log.Logger, w http.ResponseWriter) {
	log.Printf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// httpError writes the error status code.
func httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}

// hasSecHeader returns true if the request has any header starting with "Sec-".
func hasSecHeader(r *http.Request) bool {
	for header := range r.Header {
		if strings.HasPrefix(header, "Sec-") {
			return true
		}
	}
	return false
}

// addMimeType adds the applicable mime type to the response.  Files without extensions are assumed to be text.
func addMimeType(fileName string, w http.ResponseWriter) {
	if !strings.Contains(fileName, ".") {
		fileName = ".txt"
	}
	extension := filepath.Ext(fileName)
	mimeType := mime.TypeByExtension(extension)
	w.Header().Add(HeaderContentType, mimeType)
}

// wrappedResponseWriter wraps response writing with another writer.
type wrappedResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

// Write delegates the write to the wrapped writer.
func (wrw wrappedResponseWriter) Write(p []byte) (n int, err error) {
	return wrw.Writer.Write(p)
}
