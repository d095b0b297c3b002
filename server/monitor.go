package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/pprof"
)

// runtimeMonitor writes runtime information about the server to responses.
type runtimeMonitor struct {
	hasTLS bool
}

// ServeHTTP writes the memory statistics and goroutine stack traces of the server.
func (m runtimeMonitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ms := new(runtime.MemStats)
	runtime.ReadMemStats(ms)
	p := pprof.Lookup("goroutine")
	writeMemoryStats(w, ms)
	fmt.Fprintln(w)
	writeGoroutineExpectations(w, m.hasTLS)
	fmt.Fprintln(w)
	writeGoroutineStackTraces(w, p)
}

// writeMemoryStats writes the memory runtime statistics of the server.
func writeMemoryStats(w io.Writer, m *runtime.MemStats) {
	fmt.Fprintln(w, "--- Memory Stats ---")
	fmt.Fprintln(w, "Alloc (bytes on heap)", m.Alloc)
	fmt.Fprintln(w, "TotalAlloc (total heap size)", m.TotalAlloc)
	fmt.Fprintln(w, "Sys (bytes used to run server)", m.Sys)
	fmt.Fprintln(w, "Live object count (Mallocs - Frees)", m.Mallocs-m.Frees)
}

// writeGoroutineExpectations writes a message about the expected goroutines.
func writeGoroutineExpectations(w io.Writer, hasTLS bool) {
	fmt.Fprintln(w, "--- Goroutine Expectations ---")
	switch {
	case hasTLS:
		fmt.Fprintln(w, "Eight (8) goroutines are expected on an idling server.")
		fmt.Fprintln(w, "* a goroutine listening for interrupt/termination signals so the server can stop gracefully")
		fmt.Fprintln(w, "* a goroutine to handle tls connections")
		fmt.Fprintln(w, "* a goroutine to run the https (tls) server")
	default:
		fmt.Fprintln(w, "Five (5) goroutines are expected on an idling server.")
	}
	fmt.Fprintln(w, "* a goroutine to run the http server")
	fmt.Fprintln(w, "* a goroutine to serve http/2 requests")
	fmt.Fprintln(w, "* a goroutine to run the metrics feed")
	fmt.Fprintln(w, "* a goroutine to run the main procedure")
	fmt.Fprintln(w, "* a goroutine to write profiling information about goroutines")
	fmt.Fprintln(w, "Each feed subscriber adds one (1) goroutine to read its websocket messages.")
}

// writeGoroutineStackTraces writes the goroutine runtime profile's stack traces.
func writeGoroutineStackTraces(w io.Writer, p *pprof.Profile) {
	fmt.Fprintln(w, "--- Goroutine Stack Traces ---")
	p.WriteTo(w, 1)
}
