//go:build js && wasm

package socket

import (
	"context"
	"sync"
	"syscall/js"

	"chartdash/chart"
)

type mockDOM struct {
	QuerySelectorFunc  func(query string) js.Value
	SetCheckedFunc     func(query string, checked bool)
	NewWebSocketFunc   func(url string) js.Value
	WebSocketURLFunc   func(path string) string
	NewJsFuncFunc      func(fn func()) js.Func
	NewJsEventFuncFunc func(fn func(event js.Value), async bool) js.Func
	RegisterFuncsFunc  func(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func)
}

func (m *mockDOM) QuerySelector(query string) js.Value {
	return m.QuerySelectorFunc(query)
}

func (m *mockDOM) SetChecked(query string, checked bool) {
	m.SetCheckedFunc(query, checked)
}

func (m *mockDOM) NewWebSocket(url string) js.Value {
	return m.NewWebSocketFunc(url)
}

func (m *mockDOM) WebSocketURL(path string) string {
	return m.WebSocketURLFunc(path)
}

func (m *mockDOM) NewJsFunc(fn func()) js.Func {
	return m.NewJsFuncFunc(fn)
}

func (m *mockDOM) NewJsEventFunc(fn func(event js.Value), async bool) js.Func {
	return m.NewJsEventFuncFunc(fn, async)
}

func (m *mockDOM) RegisterFuncs(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func) {
	m.RegisterFuncsFunc(ctx, wg, parentName, jsFuncs)
}

type mockLog struct {
	InfoFunc    func(text string)
	WarningFunc func(text string)
	ErrorFunc   func(text string)
}

func (m *mockLog) Info(text string) {
	m.InfoFunc(text)
}

func (m *mockLog) Warning(text string) {
	m.WarningFunc(text)
}

func (m *mockLog) Error(text string) {
	m.ErrorFunc(text)
}

type mockView struct {
	SetSeriesFunc func(series []chart.Series)
	AppendFunc    func(name string, sample chart.Sample)
	RedrawFunc    func() error
}

func (m *mockView) SetSeries(series []chart.Series) {
	m.SetSeriesFunc(series)
}

func (m *mockView) Append(name string, sample chart.Sample) {
	m.AppendFunc(name, sample)
}

func (m *mockView) Redraw() error {
	return m.RedrawFunc()
}
