//go:build js && wasm

package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"syscall/js"
)

// RegisterFuncs groups the functions under a parent object on the page so
// form and button attributes can call them, creating the parent if needed.
// The functions are released when the context is done.
func (dom *DOM) RegisterFuncs(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func) {
	parent := dom.global.Get(parentName)
	if parent.IsUndefined() {
		parent = js.ValueOf(make(map[string]interface{}))
		dom.global.Set(parentName, parent)
	}
	for fnName, fn := range jsFuncs {
		parent.Set(fnName, fn)
	}
	wg.Add(1)
	go dom.releaseJsFuncsOnDone(ctx, wg, jsFuncs)
}

// NewJsFunc wraps the function for javascript callers.
func (dom *DOM) NewJsFunc(fn func()) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer dom.AlertOnPanic()
		fn()
		return nil
	})
}

// NewJsEventFunc wraps the event-handling function for javascript callers.
// PreventDefault is called on the event before the function runs.
// The function runs on its own goroutine when async is true, which is required
// when it makes blocking calls such as http requests.
func (dom *DOM) NewJsEventFunc(fn func(event js.Value), async bool) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		event := args[0]
		event.Call("preventDefault")
		runFn := func() {
			defer dom.AlertOnPanic()
			fn(event)
		}
		if !async {
			runFn()
			return nil
		}
		go runFn()
		return nil
	})
}

// releaseJsFuncsOnDone waits for the context to be done before releasing the functions.
func (dom *DOM) releaseJsFuncsOnDone(ctx context.Context, wg *sync.WaitGroup, jsFuncs map[string]js.Func) {
	defer dom.AlertOnPanic()
	<-ctx.Done() // BLOCKING
	for _, f := range jsFuncs {
		f.Release()
	}
	wg.Done()
}

// AlertOnPanic surfaces a panic on the page before the site stops working.
// This function should be deferred as the first statement of each goroutine.
func (dom *DOM) AlertOnPanic() {
	if r := recover(); r != nil {
		err := dom.recoverError(r)
		f := []string{
			"FATAL: site shutting down",
			"See browser console for more information",
			"Message: " + err.Error(),
		}
		message := strings.Join(f, "\n")
		dom.alert(message)
		panic(err)
	}
}

// recoverError converts the recovery interface into a useful error.
// Panics if the interface is not an error or a string.
func (dom *DOM) recoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		panic([]interface{}{"unknown panic type", v, r})
	}
}
