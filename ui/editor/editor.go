//go:build js && wasm

// Package editor manages the chart-editing forms on the page.
// Editing is guarded by the editor password; a successful login stores a token
// that authorizes saving and deleting chart definitions.
package editor

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"syscall/js"

	"chartdash/chart"
	"chartdash/ui/http"
)

type (
	// Editor submits the login and chart forms to the server.
	Editor struct {
		dom        DOM
		log        Log
		httpClient http.Client
		jwt        string
	}

	// DOM contains the javascript bindings the editor uses.
	DOM interface {
		Value(query string) string
		SetValue(query, value string)
		SetChecked(query string, checked bool)
		BaseURL() string
		NewJsFunc(fn func()) js.Func
		NewJsEventFunc(fn func(event js.Value), async bool) js.Func
		RegisterFuncs(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func)
	}

	// Log is used to surface the results of form submissions on the page.
	Log interface {
		Info(text string)
		Warning(text string)
		Error(text string)
	}
)

// New creates an editor that submits forms through the http client.
func New(dom DOM, log Log, httpClient http.Client) *Editor {
	e := Editor{
		dom:        dom,
		log:        log,
		httpClient: httpClient,
	}
	return &e
}

// InitDom registers editor dom functions.
func (e *Editor) InitDom(ctx context.Context, wg *sync.WaitGroup) {
	jsFuncs := map[string]js.Func{
		"login":       e.dom.NewJsEventFunc(e.login, true),
		"saveChart":   e.dom.NewJsEventFunc(e.saveChart, true),
		"deleteChart": e.dom.NewJsEventFunc(e.deleteChart, true),
		"ping":        e.dom.NewJsEventFunc(e.ping, true),
		"logout":      e.dom.NewJsFunc(e.Logout),
	}
	e.dom.RegisterFuncs(ctx, wg, "editor", jsFuncs)
}

// login exchanges the password input for a token that authorizes editing.
func (e *Editor) login(event js.Value) {
	params := url.Values{
		"password": {e.dom.Value("#editor-password")},
	}
	resp, err := e.do("/login", params, false)
	switch {
	case err != nil:
		e.log.Error("making http request: " + err.Error())
	case resp.Code >= 400:
		e.handleResponseError(resp)
	default:
		defer resp.Body.Close()
		jwt, err := io.ReadAll(resp.Body)
		if err != nil {
			e.log.Error("reading response body: " + err.Error())
			return
		}
		e.jwt = string(jwt)
		e.dom.SetValue("#editor-password", "")
		e.dom.SetChecked("#has-login", true)
		e.log.Info("logged in")
	}
}

// saveChart submits the chart form, creating or updating the definition.
func (e *Editor) saveChart(event js.Value) {
	def := chart.Definition{
		ID:          e.dom.Value("#chart-id"),
		Title:       e.dom.Value("#chart-title"),
		SeriesNames: splitSeriesNames(e.dom.Value("#chart-series")),
	}
	if maxSamples := e.dom.Value("#chart-max-samples"); len(maxSamples) != 0 {
		n, err := strconv.Atoi(maxSamples)
		if err != nil {
			e.log.Warning("max samples must be a number")
			return
		}
		def.MaxSamples = n
	}
	if err := def.Validate(); err != nil {
		e.log.Warning("invalid chart: " + err.Error())
		return
	}
	params := url.Values{
		"id":          {def.ID},
		"title":       {def.Title},
		"seriesNames": def.SeriesNames,
		"maxSamples":  {strconv.Itoa(def.MaxSamples)},
	}
	resp, err := e.do("/chart_save", params, true)
	switch {
	case err != nil:
		e.log.Error("making http request: " + err.Error())
	case resp.Code >= 400:
		e.handleResponseError(resp)
	default:
		resp.Body.Close()
		e.log.Info("chart saved: " + def.ID)
	}
}

// deleteChart removes the saved definition named by the chart id input.
func (e *Editor) deleteChart(event js.Value) {
	id := e.dom.Value("#chart-id")
	params := url.Values{
		"id": {id},
	}
	resp, err := e.do("/chart_delete", params, true)
	switch {
	case err != nil:
		e.log.Error("making http request: " + err.Error())
	case resp.Code >= 400:
		e.handleResponseError(resp)
	default:
		resp.Body.Close()
		e.log.Info("chart deleted: " + id)
	}
}

// ping makes a small request to keep the server's http handling active.
// The request works without a login so the feed stays alive for viewers.
func (e *Editor) ping(event js.Value) {
	resp, err := e.do("/ping", nil, false)
	switch {
	case err != nil:
		e.log.Error("making http request: " + err.Error())
	case resp.Code >= 400:
		e.handleResponseError(resp)
	default:
		resp.Body.Close()
	}
}

// Logout forgets the editing token.
func (e *Editor) Logout() {
	e.jwt = ""
	e.dom.SetChecked("#has-login", false)
}

// do posts the form params to the path on the current host.
func (e *Editor) do(path string, params url.Values, authorized bool) (*http.Response, error) {
	req := http.Request{
		Method: "POST",
		URL:    e.dom.BaseURL() + path,
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		},
		Body: strings.NewReader(params.Encode()),
	}
	if authorized {
		req.Headers["Authorization"] = "Bearer " + e.jwt
	}
	return e.httpClient.Do(req)
}

// handleResponseError logs the error response and forgets the token, which the server may have rejected.
func (e *Editor) handleResponseError(resp *http.Response) {
	e.Logout()
	defer resp.Body.Close()
	message, err := io.ReadAll(resp.Body)
	switch {
	case err != nil:
		e.log.Error("reading error response body: " + err.Error())
	default:
		e.log.Error("HTTP error: status " + strconv.Itoa(resp.Code) + ": " + string(message))
	}
}

// splitSeriesNames splits the comma-separated input, dropping blank entries.
func splitSeriesNames(value string) []string {
	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); len(name) != 0 {
			names = append(names, name)
		}
	}
	return names
}
