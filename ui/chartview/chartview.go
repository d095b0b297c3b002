// Package chartview renders chart series onto a drawing backend.
// It owns the chart state for the page; the backend it draws through owns none.
package chartview

import (
	"fmt"
	"math"

	"chartdash/chart"
	"chartdash/draw"
)

type (
	// View draws the chart for a set of series.
	View struct {
		backend draw.Backend
		def     chart.Definition
		series  []chart.Series
		indexes map[string]int
		font    draw.FontDesc
	}

	// Config contains the parameters to create a View.
	Config struct {
		// Definition describes the chart to show.
		Definition chart.Definition
		// FontSizePx is the label font size in pixels.
		FontSizePx float64
	}

	// scale maps sample values to backend pixel coordinates.
	scale struct {
		bounds chart.Bounds
		plot   plotArea
	}

	// plotArea is the pixel rectangle the samples are drawn in.
	plotArea struct {
		minX int
		minY int
		maxX int
		maxY int
	}
)

// margins around the plot area, leaving room for labels.
const (
	marginLeft   = 48
	marginRight  = 12
	marginTop    = 24
	marginBottom = 20
)

// palette is cycled through for the series stroke colors.
var palette = []draw.RGBA{
	{R: 31, G: 119, B: 180, A: 1},
	{R: 255, G: 127, B: 14, A: 1},
	{R: 44, G: 160, B: 44, A: 1},
	{R: 214, G: 39, B: 40, A: 1},
	{R: 148, G: 103, B: 189, A: 1},
}

var (
	backgroundColor = draw.RGBA{R: 255, G: 255, B: 255, A: 1}
	frameColor      = draw.RGBA{R: 120, G: 120, B: 120, A: 1}
	textColor       = draw.RGBA{R: 40, G: 40, B: 40, A: 1}
)

// New creates a View that renders through the backend.
func (cfg Config) New(backend draw.Backend) *View {
	if cfg.FontSizePx <= 0 {
		cfg.FontSizePx = 12
	}
	v := View{
		backend: backend,
		def:     cfg.Definition,
		indexes: make(map[string]int),
		font: draw.FontDesc{
			SizePx: cfg.FontSizePx,
			Family: "sans-serif",
		},
	}
	return &v
}

// SetSeries replaces all the series of the view.
func (v *View) SetSeries(series []chart.Series) {
	v.series = series
	v.indexes = make(map[string]int, len(series))
	for i, s := range series {
		v.indexes[s.Name] = i
	}
}

// Append adds a sample to the named series, creating the series if it is new.
// Old samples past the definition's max sample count are discarded.
func (v *View) Append(name string, sample chart.Sample) {
	i, ok := v.indexes[name]
	if !ok {
		i = len(v.series)
		v.series = append(v.series, chart.Series{Name: name})
		v.indexes[name] = i
	}
	v.series[i].Append(sample, v.def.MaxSamples)
}

// Redraw renders the whole chart.
// The render is aborted on the first drawing error, which is returned.
func (v *View) Redraw() error {
	if err := v.backend.Open(); err != nil {
		return fmt.Errorf("opening backend: %w", err)
	}
	if err := v.redraw(); err != nil {
		return err
	}
	if err := v.backend.Close(); err != nil {
		return fmt.Errorf("closing backend: %w", err)
	}
	return nil
}

func (v *View) redraw() error {
	width, height := v.backend.Size()
	if err := v.backend.DrawRect(draw.Coord{}, draw.Coord{X: width, Y: height}, backgroundColor, true); err != nil {
		return fmt.Errorf("drawing background: %w", err)
	}
	plot := plotArea{
		minX: marginLeft,
		minY: marginTop,
		maxX: width - marginRight,
		maxY: height - marginBottom,
	}
	if err := v.backend.DrawRect(draw.Coord{X: plot.minX, Y: plot.minY}, draw.Coord{X: plot.maxX, Y: plot.maxY}, frameColor, false); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	if err := v.drawAxes(plot); err != nil {
		return err
	}
	if err := v.backend.DrawText(v.def.Title, v.font, draw.Coord{X: plot.minX, Y: 2}, textColor); err != nil {
		return fmt.Errorf("drawing title: %w", err)
	}
	bounds, ok := chart.SeriesBounds(v.series)
	if !ok {
		return nil
	}
	sc := scale{
		bounds: bounds,
		plot:   plot,
	}
	if err := v.drawValueLabels(sc); err != nil {
		return err
	}
	for i, s := range v.series {
		if err := v.drawSeries(s, palette[i%len(palette)], sc); err != nil {
			return err
		}
	}
	if err := v.drawLegend(plot); err != nil {
		return err
	}
	return nil
}

// drawAxes paints the value axis on the left and the time axis on the bottom of the plot.
func (v *View) drawAxes(plot plotArea) error {
	origin := draw.Coord{X: plot.minX, Y: plot.maxY}
	if err := v.backend.DrawLine(draw.Coord{X: plot.minX, Y: plot.minY}, origin, frameColor); err != nil {
		return fmt.Errorf("drawing value axis: %w", err)
	}
	if err := v.backend.DrawLine(origin, draw.Coord{X: plot.maxX, Y: plot.maxY}, frameColor); err != nil {
		return fmt.Errorf("drawing time axis: %w", err)
	}
	return nil
}

// drawLegend paints each series name in its stroke color along the top of the plot.
func (v *View) drawLegend(plot plotArea) error {
	x := plot.minX + 4
	for i, s := range v.series {
		if err := v.backend.DrawText(s.Name, v.font, draw.Coord{X: x, Y: plot.minY + 2}, palette[i%len(palette)]); err != nil {
			return fmt.Errorf("drawing legend entry %v: %w", s.Name, err)
		}
		x += legendAdvance(s.Name, v.font.SizePx)
	}
	return nil
}

// legendAdvance estimates the pixel width of a legend entry plus a gap.
// The backend has no text-measuring operation, so the width is approximated
// from the font size.
func legendAdvance(name string, fontSizePx float64) int {
	return int(float64(len(name)+2) * fontSizePx * 0.6)
}

// drawValueLabels paints the min and max sample values at the left edge of the plot.
func (v *View) drawValueLabels(sc scale) error {
	labels := []struct {
		value float64
		y     int
	}{
		{sc.bounds.MaxY, sc.plot.minY},
		{sc.bounds.MinY, sc.plot.maxY - int(v.font.SizePx)},
	}
	for _, l := range labels {
		text := fmt.Sprintf("%.4g", l.value)
		if err := v.backend.DrawText(text, v.font, draw.Coord{X: 2, Y: l.y}, textColor); err != nil {
			return fmt.Errorf("drawing value label: %w", err)
		}
	}
	return nil
}

// drawSeries paints one series as a polyline with a marker on the newest sample.
// A series with a single sample is painted as a lone pixel.
func (v *View) drawSeries(s chart.Series, color draw.RGBA, sc scale) error {
	if len(s.Samples) == 0 {
		return nil
	}
	points := make([]draw.Coord, len(s.Samples))
	for i, sample := range s.Samples {
		points[i] = sc.coord(sample)
	}
	if len(points) == 1 {
		if err := v.backend.DrawPixel(points[0], color); err != nil {
			return fmt.Errorf("drawing series %v: %w", s.Name, err)
		}
		return nil
	}
	if err := v.backend.DrawPath(points, color); err != nil {
		return fmt.Errorf("drawing series %v: %w", s.Name, err)
	}
	last := points[len(points)-1]
	if err := v.backend.DrawCircle(last, 3, color, true); err != nil {
		return fmt.Errorf("drawing series %v marker: %w", s.Name, err)
	}
	return nil
}

// coord maps the sample to a pixel coordinate in the plot area.
func (sc scale) coord(sample chart.Sample) draw.Coord {
	return draw.Coord{
		X: interpolate(sample.X, sc.bounds.MinX, sc.bounds.MaxX, sc.plot.minX, sc.plot.maxX),
		Y: interpolate(sample.Y, sc.bounds.MinY, sc.bounds.MaxY, sc.plot.maxY, sc.plot.minY),
	}
}

// interpolate maps value from [minV, maxV] into the pixel range [minP, maxP].
// A degenerate value range maps to the middle of the pixel range.
func interpolate(value, minV, maxV float64, minP, maxP int) int {
	if minV == maxV {
		return (minP + maxP) / 2
	}
	f := (value - minV) / (maxV - minV)
	return minP + int(math.Round(f*float64(maxP-minP)))
}
