//go:build js && wasm

package socket

import (
	"context"
	"sync"
	"syscall/js"
	"testing"

	"chartdash/chart"
	"chartdash/chart/message"
)

// messageEvent creates a websocket message event with the json as its data.
func messageEvent(json string) js.Value {
	return js.ValueOf(map[string]interface{}{
		"data": json,
	})
}

func TestNew(t *testing.T) {
	dom := new(mockDOM)
	log := new(mockLog)
	view := new(mockView)
	s := New(dom, log, view)
	switch {
	case s.dom == nil:
		t.Error("wanted dom to be set")
	case s.log == nil:
		t.Error("wanted log to be set")
	case s.view == nil:
		t.Error("wanted view to be set")
	}
}

func TestInitDom(t *testing.T) {
	functionsRegistered := false
	dom := mockDOM{
		NewJsEventFuncFunc: func(fn func(event js.Value), async bool) js.Func {
			if !async {
				t.Error("wanted connect func to be async")
			}
			return js.FuncOf(func(this js.Value, args []js.Value) interface{} { return nil })
		},
		RegisterFuncsFunc: func(ctx context.Context, wg *sync.WaitGroup, parentName string, jsFuncs map[string]js.Func) {
			if want, got := "socket", parentName; want != got {
				t.Errorf("wanted parent name to be %v, got %v", want, got)
			}
			if _, ok := jsFuncs["connect"]; !ok {
				t.Error("wanted a connect jsFunc")
			}
			functionsRegistered = true
		},
	}
	s := Socket{
		dom: &dom,
	}
	ctx, cancelFunc := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	s.InitDom(ctx, &wg)
	if !functionsRegistered {
		t.Error("wanted functions to be registered when dom is initialized")
	}
	cancelFunc()
	wg.Wait() // the websocket jsFuncs are released when the context is cancelled
}

func TestOnMessageSeriesRefresh(t *testing.T) {
	var gotSeries []chart.Series
	redrawn := false
	infoLogged := ""
	s := Socket{
		view: &mockView{
			SetSeriesFunc: func(series []chart.Series) {
				gotSeries = series
			},
			RedrawFunc: func() error {
				redrawn = true
				return nil
			},
		},
		log: &mockLog{
			InfoFunc: func(text string) {
				infoLogged = text
			},
		},
	}
	s.onMessage(messageEvent(`{"type":1,"info":"connected","series":[{"name":"heap","samples":[{"x":1,"y":2}]}]}`))
	switch {
	case len(gotSeries) != 1, gotSeries[0].Name != "heap":
		t.Errorf("wanted the heap series to be set, got %v", gotSeries)
	case !redrawn:
		t.Error("wanted the chart to be redrawn")
	case infoLogged != "connected":
		t.Errorf("wanted the info text to be logged, got %q", infoLogged)
	}
}

func TestOnMessageSampleAdd(t *testing.T) {
	var gotName string
	var gotSample chart.Sample
	redrawn := false
	s := Socket{
		view: &mockView{
			AppendFunc: func(name string, sample chart.Sample) {
				gotName = name
				gotSample = sample
			},
			RedrawFunc: func() error {
				redrawn = true
				return nil
			},
		},
		log: new(mockLog),
	}
	s.onMessage(messageEvent(`{"type":2,"seriesName":"goroutines","sample":{"x":3,"y":8}}`))
	switch {
	case gotName != "goroutines":
		t.Errorf("wanted sample appended to goroutines, got %v", gotName)
	case gotSample.X != 3, gotSample.Y != 8:
		t.Errorf("wanted sample (3,8), got %v", gotSample)
	case !redrawn:
		t.Error("wanted the chart to be redrawn")
	}
}

func TestOnMessageSampleAddMissingSample(t *testing.T) {
	appended := false
	errorLogged := false
	s := Socket{
		view: &mockView{
			AppendFunc: func(name string, sample chart.Sample) {
				appended = true
			},
		},
		log: &mockLog{
			ErrorFunc: func(text string) {
				errorLogged = true
			},
		},
	}
	s.onMessage(messageEvent(`{"type":2,"seriesName":"goroutines"}`))
	switch {
	case appended:
		t.Error("wanted no sample to be appended")
	case !errorLogged:
		t.Error("wanted the missing sample to be logged as an error")
	}
}

func TestOnMessageLogs(t *testing.T) {
	onMessageLogsTests := []struct {
		json        string
		wantWarning bool
		wantError   bool
	}{
		{
			json:        `{"type":3,"info":"slow down"}`,
			wantWarning: true,
		},
		{
			json:      `{"type":4,"info":"broken"}`,
			wantError: true,
		},
		{
			json:      `{"type":99}`,
			wantError: true,
		},
		{
			json:      `not json`,
			wantError: true,
		},
	}
	for i, test := range onMessageLogsTests {
		warningLogged := false
		errorLogged := false
		s := Socket{
			log: &mockLog{
				WarningFunc: func(text string) {
					warningLogged = true
				},
				ErrorFunc: func(text string) {
					errorLogged = true
				},
			},
		}
		s.onMessage(messageEvent(test.json))
		if test.wantWarning != warningLogged || test.wantError != errorLogged {
			t.Errorf("Test %v: wanted warning=%v error=%v, got warning=%v error=%v",
				i, test.wantWarning, test.wantError, warningLogged, errorLogged)
		}
	}
}

func TestOnMessageHTTPPing(t *testing.T) {
	pinged := false
	requestSubmit := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		pinged = true
		return nil
	})
	defer requestSubmit.Release()
	pingForm := js.ValueOf(map[string]interface{}{
		"requestSubmit": requestSubmit,
	})
	s := Socket{
		dom: &mockDOM{
			QuerySelectorFunc: func(query string) js.Value {
				if want, got := "form.ping", query; want != got {
					t.Errorf("wanted query %v, got %v", want, got)
				}
				return pingForm
			},
		},
	}
	s.onMessage(messageEvent(`{"type":5}`))
	if !pinged {
		t.Error("wanted the ping form to be submitted")
	}
}

func TestSendNotOpen(t *testing.T) {
	errorLogged := false
	s := Socket{
		log: &mockLog{
			ErrorFunc: func(text string) {
				errorLogged = true
			},
		},
	}
	s.Send(message.Message{Type: message.SocketHTTPPing})
	if !errorLogged {
		t.Error("wanted an error to be logged when the websocket is not open")
	}
}

func TestSend(t *testing.T) {
	var sentJSON string
	send := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		sentJSON = args[0].String()
		return nil
	})
	defer send.Release()
	s := Socket{
		webSocket: js.ValueOf(map[string]interface{}{
			"readyState": 1,
			"send":       send,
		}),
	}
	s.Send(message.Message{Type: message.SocketHTTPPing})
	if want, got := `{"type":5}`, sentJSON; want != got {
		t.Errorf("wanted %v to be sent, got %v", want, got)
	}
}

func TestClose(t *testing.T) {
	closeCalled := false
	closeFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		closeCalled = true
		return nil
	})
	defer closeFn.Release()
	hasWebSocket := true
	s := Socket{
		dom: &mockDOM{
			SetCheckedFunc: func(query string, checked bool) {
				hasWebSocket = checked
			},
		},
		webSocket: js.ValueOf(map[string]interface{}{
			"readyState": 1,
			"close":      closeFn,
		}),
	}
	s.Close()
	switch {
	case !closeCalled:
		t.Error("wanted the websocket to be closed")
	case hasWebSocket:
		t.Error("wanted the has-websocket checkbox to be unchecked")
	}
}
