// Package chart contains the data model shared by the server and the
// browser ui: sampled series and saved chart definitions.
package chart

import "fmt"

type (
	// Sample is a single measured value at a point on the x axis.
	Sample struct {
		// X is the sample position, normally seconds since the unix epoch.
		X float64 `json:"x"`
		// Y is the measured value.
		Y float64 `json:"y"`
	}

	// Series is a named, ordered collection of samples.
	Series struct {
		// Name identifies the series in messages and legends.
		Name string `json:"name"`
		// Samples are ordered by increasing X.
		Samples []Sample `json:"samples,omitempty"`
	}

	// Definition is a saved chart: which series it shows and how.
	Definition struct {
		// ID uniquely identifies the chart in storage.
		ID string `json:"id"`
		// Title is drawn above the chart.
		Title string `json:"title"`
		// SeriesNames are the series the chart shows.
		SeriesNames []string `json:"seriesNames"`
		// MaxSamples is the largest number of samples kept per series.
		MaxSamples int `json:"maxSamples,omitempty"`
	}

	// Bounds is the smallest axis-aligned range containing every sample.
	Bounds struct {
		MinX float64
		MaxX float64
		MinY float64
		MaxY float64
	}
)

// Append adds a sample to the end of the series.
// The oldest samples are discarded to keep at most maxSamples when maxSamples is positive.
func (s *Series) Append(sample Sample, maxSamples int) {
	s.Samples = append(s.Samples, sample)
	if maxSamples > 0 && len(s.Samples) > maxSamples {
		n := copy(s.Samples, s.Samples[len(s.Samples)-maxSamples:])
		s.Samples = s.Samples[:n]
	}
}

// SeriesBounds computes the sample bounds of all the series.
// The second return value is false if the series contain no samples.
func SeriesBounds(series []Series) (Bounds, bool) {
	var b Bounds
	any := false
	for _, s := range series {
		for _, sample := range s.Samples {
			switch {
			case !any:
				b = Bounds{
					MinX: sample.X,
					MaxX: sample.X,
					MinY: sample.Y,
					MaxY: sample.Y,
				}
				any = true
			default:
				b.MinX = min(b.MinX, sample.X)
				b.MaxX = max(b.MaxX, sample.X)
				b.MinY = min(b.MinY, sample.Y)
				b.MaxY = max(b.MaxY, sample.Y)
			}
		}
	}
	return b, any
}

// Validate ensures the definition can be saved.
func (d Definition) Validate() error {
	switch {
	case len(d.ID) == 0:
		return fmt.Errorf("chart id required")
	case len(d.ID) > 64:
		return fmt.Errorf("chart id must be at most 64 characters long")
	case len(d.SeriesNames) == 0:
		return fmt.Errorf("chart must show at least one series")
	case d.MaxSamples < 0:
		return fmt.Errorf("max samples must not be negative")
	}
	for _, r := range d.ID {
		// only ascii is allowed; ids are storage keys on every backend
		if ('a' > r || r > 'z') && ('0' > r || r > '9') && r != '-' {
			return fmt.Errorf("chart id must be made of lowercase letters, digits, and hyphens")
		}
	}
	return nil
}
