//go:build js && wasm

package main

import (
	"context"
	"errors"
	net_http "net/http"
	"sync"
	"time"

	"chartdash/chart"
	"chartdash/ui"
	"chartdash/ui/canvas"
	"chartdash/ui/chartview"
	"chartdash/ui/editor"
	"chartdash/ui/http/native"
	"chartdash/ui/log"
	"chartdash/ui/socket"
)

type (
	// flags contains options for the ui.
	flags struct {
		dom          *ui.DOM
		httpTimeout  time.Duration
		canvasElemID string
		chartTitle   string
		maxSamples   int
	}

	// domInitializer adds functions to the dom.
	domInitializer interface {
		InitDom(ctx context.Context, wg *sync.WaitGroup)
	}
)

// initDom creates, initializes, and links up dom components.
// The socket and log are returned so the feed connection can be started.
func (f *flags) initDom(ctx context.Context, wg *sync.WaitGroup) (*socket.Socket, *log.Log, error) {
	s, l, domInitializers, err := f.createDomInitializers()
	if err != nil {
		return nil, nil, err
	}
	for _, di := range domInitializers {
		di.InitDom(ctx, wg)
	}
	return s, l, nil
}

// createDomInitializers creates the components that need to be initialized.
func (f *flags) createDomInitializers() (*socket.Socket, *log.Log, []domInitializer, error) {
	timeFunc := func() int64 {
		return time.Now().Unix()
	}
	log := log.New(f.dom, timeFunc)
	backend := canvas.New(f.canvasElemID)
	if backend == nil {
		return nil, nil, nil, errors.New("could not access the chart canvas: " + f.canvasElemID)
	}
	viewCfg := chartview.Config{
		Definition: chart.Definition{
			Title:      f.chartTitle,
			MaxSamples: f.maxSamples,
		},
	}
	view := viewCfg.New(backend)
	httpClient := native.HTTPClient{
		Client: net_http.Client{
			Timeout: f.httpTimeout,
		},
	}
	editor := editor.New(f.dom, log, httpClient)
	socket := socket.New(f.dom, log, view)
	return socket, log, []domInitializer{log, editor, socket}, nil
}
