//go:build js && wasm

// Package log writes messages to the log div on the page.
package log

import (
	"context"
	"sync"
	"syscall/js"
)

type (
	// Log manages messages for the log div.
	Log struct {
		dom DOM
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// This is used for logging message timestamps.
		TimeFunc func() int64
	}

	// DOM contains the javascript bindings the log uses.
	DOM interface {
		QuerySelector(query string) js.Value
		SetChecked(query string, checked bool)
		CloneElement(query string) js.Value
		FormatTime(utcSeconds int64) string
		NewJsFunc(fn func()) js.Func
		RegisterFuncs(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func)
	}
)

// New creates a log that appends to the log div.
func New(dom DOM, timeFunc func() int64) *Log {
	l := Log{
		dom:      dom,
		TimeFunc: timeFunc,
	}
	return &l
}

// InitDom registers log dom functions.
func (l *Log) InitDom(ctx context.Context, wg *sync.WaitGroup) {
	jsFuncs := map[string]js.Func{
		"clear": l.dom.NewJsFunc(l.Clear),
	}
	l.dom.RegisterFuncs(ctx, wg, "log", jsFuncs)
}

// Info logs an info-styled message.
func (l *Log) Info(text string) {
	l.add("info", text)
}

// Warning logs a warning-styled message.
func (l *Log) Warning(text string) {
	l.add("warning", text)
}

// Error logs an error-styled message.
func (l *Log) Error(text string) {
	l.add("error", text)
}

// Clear clears the log.
func (l *Log) Clear() {
	l.dom.SetChecked("#hide-log", true)
	logScrollElement := l.dom.QuerySelector(".log>.scroll")
	logScrollElement.Set("innerHTML", "")
}

// add writes a log item with the specified class.
func (l *Log) add(class, text string) {
	l.dom.SetChecked("#hide-log", false)
	clone := l.dom.CloneElement(".log>template")
	cloneChildren := clone.Get("children")
	logItemElement := cloneChildren.Index(0)
	time := l.dom.FormatTime(l.TimeFunc())
	textContent := time + " : " + text
	logItemElement.Set("textContent", textContent)
	logItemElement.Set("className", class)
	logScrollElement := l.dom.QuerySelector(".log>.scroll")
	logScrollElement.Call("appendChild", logItemElement)
	scrollHeight := logScrollElement.Get("scrollHeight")
	clientHeight := logScrollElement.Get("clientHeight")
	scrollTop := scrollHeight.Int() - clientHeight.Int()
	logScrollElement.Set("scrollTop", scrollTop)
}
