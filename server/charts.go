package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"chartdash/chart"
	"chartdash/server/log"
)

// editorSubject is the subject stored in editing session tokens.
const editorSubject = "editor"

// loginHandler checks the editor password and writes a session token to the response.
func loginHandler(editorPasswordHash []byte, ph PasswordHandler, tokenizer Tokenizer, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.FormValue("password")
		isCorrect, err := ph.IsCorrect(editorPasswordHash, password)
		switch {
		case err != nil:
			writeInternalError(fmt.Errorf("checking password: %w", err), log, w)
			return
		case !isCorrect:
			log.Printf("login failure")
			http.Error(w, "incorrect password", http.StatusUnauthorized)
			return
		}
		token, err := tokenizer.Create(editorSubject)
		if err != nil {
			writeInternalError(fmt.Errorf("creating token: %w", err), log, w)
			return
		}
		if _, err := w.Write([]byte(token)); err != nil {
			writeInternalError(fmt.Errorf("writing authorization token: %w", err), log, w)
			return
		}
	}
}

// chartSaveHandler stores the chart definition from the form values.
// The chart form posts one seriesNames value per series; comma-separated names
// within a value are also accepted.
func chartSaveHandler(dao ChartDao, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "parsing form: "+err.Error(), http.StatusBadRequest)
			return
		}
		maxSamples := 0
		if v := r.FormValue("maxSamples"); len(v) != 0 {
			var err error
			if maxSamples, err = strconv.Atoi(v); err != nil {
				http.Error(w, "max samples must be a number", http.StatusBadRequest)
				return
			}
		}
		d := chart.Definition{
			ID:          r.FormValue("id"),
			Title:       r.FormValue("title"),
			SeriesNames: splitSeriesNames(r.Form["seriesNames"]...),
			MaxSamples:  maxSamples,
		}
		if err := d.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		if err := dao.Save(ctx, d); err != nil {
			writeInternalError(fmt.Errorf("saving chart: %w", err), log, w)
			return
		}
	}
}

// chartDeleteHandler removes the chart with the id form value.
func chartDeleteHandler(dao ChartDao, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.FormValue("id")
		ctx := r.Context()
		if err := dao.Delete(ctx, id); err != nil {
			writeInternalError(fmt.Errorf("deleting chart: %w", err), log, w)
			return
		}
	}
}

// chartListHandler writes the saved chart definitions to the response as json.
func chartListHandler(dao ChartDao, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defs, err := dao.List(ctx)
		if err != nil {
			writeInternalError(fmt.Errorf("listing charts: %w", err), log, w)
			return
		}
		if defs == nil {
			defs = []chart.Definition{}
		}
		w.Header().Set(HeaderContentType, "application/json")
		if err := json.NewEncoder(w).Encode(defs); err != nil {
			writeInternalError(fmt.Errorf("encoding charts: %w", err), log, w)
			return
		}
	}
}

// feedConnectHandler upgrades the request to a websocket and subscribes it to the feed.
func feedConnectHandler(f Feed, upgrader Upgrader, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r)
		if err != nil {
			writeInternalError(fmt.Errorf("upgrading to websocket connection: %w", err), log, w)
			return
		}
		ctx := r.Context()
		if err := f.Subscribe(ctx, conn); err != nil {
			log.Printf("subscribing connection: %v", err)
			conn.Close()
			return
		}
	}
}

// splitSeriesNames merges the form values, splitting each on commas and dropping blank entries.
func splitSeriesNames(values ...string) []string {
	var names []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			name = strings.TrimSpace(name)
			if len(name) != 0 {
				names = append(names, name)
			}
		}
	}
	return names
}
