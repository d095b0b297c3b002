package feed

import "runtime"

// sourceFunc is a Source around a sampling function.
type sourceFunc struct {
	name   string
	sample func() float64
}

func (s sourceFunc) Name() string {
	return s.name
}

func (s sourceFunc) Sample() float64 {
	return s.sample()
}

// RuntimeSources creates sources for process metrics: heap size, goroutine count, and garbage-collection pause time.
func RuntimeSources() []Source {
	return []Source{
		sourceFunc{
			name: "heap MB",
			sample: func() float64 {
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				return float64(ms.HeapAlloc) / (1 << 20)
			},
		},
		sourceFunc{
			name: "goroutines",
			sample: func() float64 {
				return float64(runtime.NumGoroutine())
			},
		},
		sourceFunc{
			name: "gc pause ms",
			sample: func() float64 {
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				if ms.NumGC == 0 {
					return 0
				}
				return float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6
			},
		},
	}
}
