//go:build js && wasm

// Package ui contains the browser client for the dashboard.
// It compiles to webassembly so the charts render in the page.
package ui

import (
	"syscall/js"
	"time"
)

// DOM contains the javascript bindings for the site.
type DOM struct {
	global js.Value
}

// NewDOM creates a DOM around the global javascript object.
func NewDOM(global js.Value) *DOM {
	dom := DOM{
		global: global,
	}
	return &dom
}

// QuerySelector returns the first element returned by the query from the root of the document.
func (dom *DOM) QuerySelector(query string) js.Value {
	document := dom.global.Get("document")
	return document.Call("querySelector", query)
}

// QuerySelectorAll returns an array of the elements returned by the query from the specified document.
func (dom *DOM) QuerySelectorAll(document js.Value, query string) []js.Value {
	value := document.Call("querySelectorAll", query)
	values := make([]js.Value, value.Length())
	for i := 0; i < len(values); i++ {
		values[i] = value.Index(i)
	}
	return values
}

// SetChecked sets the checked property of the element.
func (dom *DOM) SetChecked(query string, checked bool) {
	element := dom.QuerySelector(query)
	element.Set("checked", checked)
}

// Value gets the value of the input element.
func (dom *DOM) Value(query string) string {
	element := dom.QuerySelector(query)
	value := element.Get("value")
	return value.String()
}

// SetValue sets the value of the input element.
func (dom *DOM) SetValue(query, value string) {
	element := dom.QuerySelector(query)
	element.Set("value", value)
}

// SetButtonDisabled sets the disabled property of the button element.
func (dom *DOM) SetButtonDisabled(query string, disabled bool) {
	element := dom.QuerySelector(query)
	element.Set("disabled", disabled)
}

// FormatTime formats a datetime to HH:MM:SS.
func (dom *DOM) FormatTime(utcSeconds int64) string {
	t := time.Unix(utcSeconds, 0).Local() // uses local timezone
	return t.Format("15:04:05")
}

// CloneElement creates a clone of the element, which should be a template.
func (dom *DOM) CloneElement(query string) js.Value {
	templateElement := dom.QuerySelector(query)
	contentElement := templateElement.Get("content")
	clone := contentElement.Call("cloneNode", true)
	return clone
}

// alert shows a popup in the browser.
func (dom *DOM) alert(message string) {
	dom.global.Call("alert", message)
}

// NewWebSocket creates a WebSocket that connects to the specified url.
func (dom *DOM) NewWebSocket(url string) js.Value {
	webSocket := dom.global.Get("WebSocket")
	return webSocket.New(url)
}

// BaseURL returns the origin of the current page.
func (dom *DOM) BaseURL() string {
	location := dom.global.Get("location")
	return location.Get("origin").String()
}

// WebSocketURL creates a websocket url for the path on the current host.
func (dom *DOM) WebSocketURL(path string) string {
	location := dom.global.Get("location")
	scheme := "wss"
	if location.Get("protocol").String() == "http:" {
		scheme = "ws"
	}
	return scheme + "://" + location.Get("host").String() + path
}
