//go:build js && wasm

// Package socket receives chart updates from the server over a websocket.
package socket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"syscall/js"

	"chartdash/chart"
	"chartdash/chart/message"
)

type (
	// Socket pulls chart messages from the server and pushes them to the view.
	Socket struct {
		dom             DOM
		log             Log
		view            View
		webSocket       js.Value
		onOpenJsFunc    js.Func
		onCloseJsFunc   js.Func
		onErrorJsFunc   js.Func
		onMessageJsFunc js.Func
	}

	// DOM contains the javascript bindings the socket uses.
	DOM interface {
		QuerySelector(query string) js.Value
		SetChecked(query string, checked bool)
		NewWebSocket(url string) js.Value
		WebSocketURL(path string) string
		NewJsFunc(fn func()) js.Func
		NewJsEventFunc(fn func(event js.Value), async bool) js.Func
		RegisterFuncs(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func)
	}

	// Log is used to surface connection and message problems on the page.
	Log interface {
		Info(text string)
		Warning(text string)
		Error(text string)
	}

	// View is the chart the socket pushes updates into.
	View interface {
		SetSeries(series []chart.Series)
		Append(name string, sample chart.Sample)
		Redraw() error
	}
)

// feedPath is the server endpoint that upgrades to a websocket.
const feedPath = "/feed"

// New creates a socket that updates the view with messages from the server.
func New(dom DOM, log Log, view View) *Socket {
	s := Socket{
		dom:  dom,
		log:  log,
		view: view,
	}
	return &s
}

// InitDom registers socket dom functions and releases the websocket callbacks when the context is done.
func (s *Socket) InitDom(ctx context.Context, wg *sync.WaitGroup) {
	jsFuncs := map[string]js.Func{
		"connect": s.dom.NewJsEventFunc(s.connectEvent, true),
	}
	s.dom.RegisterFuncs(ctx, wg, "socket", jsFuncs)
	wg.Add(1)
	go func() {
		<-ctx.Done()
		s.releaseWebSocketJsFuncs()
		wg.Done()
	}()
}

// connectEvent connects the socket, logging any failure.
func (s *Socket) connectEvent(event js.Value) {
	if err := s.Connect(); err != nil {
		s.log.Error("connecting to feed: " + err.Error())
	}
}

func (s *Socket) releaseWebSocketJsFuncs() {
	s.onOpenJsFunc.Release()
	s.onCloseJsFunc.Release()
	s.onErrorJsFunc.Release()
	s.onMessageJsFunc.Release()
}

// Connect establishes the websocket connection if it has not yet been established.
func (s *Socket) Connect() error {
	if s.isOpen() {
		return nil
	}
	url := s.dom.WebSocketURL(feedPath)
	s.releaseWebSocketJsFuncs()
	errC := make(chan error)
	s.onOpenJsFunc = s.dom.NewJsFunc(s.onOpen(errC))
	s.onCloseJsFunc = s.dom.NewJsEventFunc(s.onClose, false)
	s.onErrorJsFunc = s.dom.NewJsFunc(s.onError(errC))
	s.onMessageJsFunc = s.dom.NewJsEventFunc(s.onMessage, false)
	s.webSocket = s.dom.NewWebSocket(url)
	s.webSocket.Set("onopen", s.onOpenJsFunc)
	s.webSocket.Set("onclose", s.onCloseJsFunc)
	s.webSocket.Set("onerror", s.onErrorJsFunc)
	s.webSocket.Set("onmessage", s.onMessageJsFunc)
	return <-errC
}

// onOpen is called when the websocket opens.
func (s *Socket) onOpen(errC chan<- error) func() {
	return func() {
		s.dom.SetChecked(".has-websocket", true)
		errC <- nil
	}
}

// onClose is called when the websocket is closing.
func (s *Socket) onClose(event js.Value) {
	if reason := event.Get("reason"); !reason.IsUndefined() && len(reason.String()) != 0 {
		s.log.Warning("feed closed: " + reason.String())
	}
	s.closeWebSocket()
}

func (s *Socket) closeWebSocket() {
	s.webSocket.Set("onopen", nil)
	s.webSocket.Set("onclose", nil)
	s.webSocket.Set("onerror", nil)
	s.webSocket.Set("onmessage", nil)
	s.releaseWebSocketJsFuncs()
	s.dom.SetChecked(".has-websocket", false)
}

// onError is called when the websocket encounters an unexpected error.
func (s *Socket) onError(errC chan<- error) func() {
	return func() {
		errC <- errors.New("feed connection failed")
	}
}

// onMessage is called when the websocket receives a message.
func (s *Socket) onMessage(event js.Value) {
	jsMessage := event.Get("data")
	messageJSON := jsMessage.String()
	var m message.Message
	err := json.Unmarshal([]byte(messageJSON), &m)
	if err != nil {
		s.log.Error("unmarshalling message: " + err.Error())
		return
	}
	switch m.Type {
	case message.SeriesRefresh:
		s.handleSeriesRefresh(m)
	case message.SampleAdd:
		s.handleSampleAdd(m)
	case message.SocketWarning:
		s.log.Warning(m.Info)
	case message.SocketError:
		s.log.Error(m.Info)
	case message.SocketHTTPPing:
		s.httpPing()
	default:
		s.log.Error("unknown message type received")
	}
}

// handleSeriesRefresh replaces the view's series and redraws the chart.
func (s *Socket) handleSeriesRefresh(m message.Message) {
	s.view.SetSeries(m.Series)
	s.redraw()
	if len(m.Info) > 0 {
		s.log.Info(m.Info)
	}
}

// handleSampleAdd appends the sample to its series and redraws the chart.
func (s *Socket) handleSampleAdd(m message.Message) {
	if m.Sample == nil {
		s.log.Error("sample add message has no sample")
		return
	}
	s.view.Append(m.SeriesName, *m.Sample)
	s.redraw()
}

func (s *Socket) redraw() {
	if err := s.view.Redraw(); err != nil {
		s.log.Error("redrawing chart: " + err.Error())
	}
}

// Send delivers a message to the server via the websocket.
func (s *Socket) Send(m message.Message) {
	if !s.isOpen() {
		s.log.Error("websocket not open")
		return
	}
	messageJSON, err := json.Marshal(m)
	if err != nil {
		s.log.Error("marshalling socket message to send: " + err.Error())
		return
	}
	s.webSocket.Call("send", js.ValueOf(string(messageJSON)))
}

// Close releases the websocket.
func (s *Socket) Close() {
	if s.isOpen() {
		s.closeWebSocket() // removes onClose
		s.webSocket.Call("close")
	}
}

// isOpen determines if the socket is defined and has a readyState of OPEN.
func (s *Socket) isOpen() bool {
	return !s.webSocket.IsUndefined() &&
		s.webSocket.Get("readyState").Int() == 1
}

// httpPing submits the small ping form to keep the server's http handling active.
func (s *Socket) httpPing() {
	pingFormElement := s.dom.QuerySelector("form.ping")
	pingFormElement.Call("requestSubmit")
}
