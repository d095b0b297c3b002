//go:build js && wasm

package editor

import (
	"context"
	"sync"
	"syscall/js"

	"chartdash/ui/http"
)

type mockDOM struct {
	ValueFunc          func(query string) string
	SetValueFunc       func(query, value string)
	SetCheckedFunc     func(query string, checked bool)
	BaseURLFunc        func() string
	NewJsFuncFunc      func(fn func()) js.Func
	NewJsEventFuncFunc func(fn func(event js.Value), async bool) js.Func
	RegisterFuncsFunc  func(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func)
}

func (m *mockDOM) Value(query string) string {
	return m.ValueFunc(query)
}

func (m *mockDOM) SetValue(query, value string) {
	m.SetValueFunc(query, value)
}

func (m *mockDOM) SetChecked(query string, checked bool) {
	m.SetCheckedFunc(query, checked)
}

func (m *mockDOM) BaseURL() string {
	return m.BaseURLFunc()
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

type mockClient struct {
	DoFunc func(req http.Request) (*http.Response, error)
}

func (m *mockClient) Do(req http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}
