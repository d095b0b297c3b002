//go:build js && wasm

// Package main initializes interactive frontend elements and runs as long as the webpage is open.
package main

import (
	"context"
	"sync"
	"syscall/js"
	"time"

	"chartdash/ui"
)

// main initializes the wasm code for the web dom and runs as long as the browser is open.
func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	dom := ui.NewDOM(js.Global())
	defer dom.AlertOnPanic()
	f := flags{
		dom:          dom,
		httpTimeout:  10 * time.Second,
		canvasElemID: "chart-canvas",
		chartTitle:   "runtime metrics",
		maxSamples:   60,
	}
	s, l, err := f.initDom(ctx, &wg)
	if err != nil {
		cancelFunc()
		panic(err)
	}
	go func() {
		defer dom.AlertOnPanic()
		if err := s.Connect(); err != nil { // BLOCKING until the feed opens or fails
			l.Error("connecting to feed: " + err.Error())
		}
	}()
	initBeforeUnloadFn(cancelFunc, &wg)
	f.enableInteraction()
	wg.Wait() // BLOCKING
}

// initBeforeUnloadFn registers a function to cancel the context when the browser is about to close.
// This should trigger other dom functions to release.
func initBeforeUnloadFn(cancelFunc context.CancelFunc, wg *sync.WaitGroup) {
	wg.Add(1)
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cancelFunc()
		fn.Release()
		wg.Done()
		return nil
	})
	global := js.Global()
	global.Call("addEventListener", "beforeunload", fn)
}

// enableInteraction removes the disabled attribute from all submit buttons, allowing viewers to send the forms.
func (f *flags) enableInteraction() {
	body := f.dom.QuerySelector("body")
	disabledSubmitButtons := f.dom.QuerySelectorAll(body, `input[type="submit"]:disabled`)
	for _, disabledSubmitButton := range disabledSubmitButtons {
		disabledSubmitButton.Set("disabled", false)
	}
}
