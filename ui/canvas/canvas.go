// Package canvas implements the drawing backend on an HTML canvas element.
package canvas

import (
	"fmt"
	"math"

	"chartdash/draw"
)

type (
	// Backend draws primitives on a canvas surface through its 2d rendering context.
	// It holds no chart state; every draw call is independent.
	Backend struct {
		surface Surface
		ctx     Context
	}

	// Surface is the canvas element the backend draws on.
	Surface interface {
		// Width gets the current width attribute of the canvas in pixels.
		Width() int
		// Height gets the current height attribute of the canvas in pixels.
		Height() int
	}

	// Context handles the drawing of the canvas.
	Context interface {
		SetFillColor(name string)
		SetStrokeColor(name string)
		SetFont(name string)
		SetTextBaseline(baseline string)
		FillRect(x, y, width, height int)
		StrokeRect(x, y, width, height int)
		BeginPath()
		MoveTo(x, y int)
		LineTo(x, y int)
		Stroke()
		Fill()
		// Arc adds a circular arc to the current path.
		// The rendering context can reject the arc, such as when the radius is negative.
		Arc(x, y, radius, startAngle, endAngle float64) error
		// FillText paints text at the position.
		// The rendering context can reject the call.
		FillText(text string, x, y float64) error
	}
)

// NewBackend creates a backend that draws on the surface through its rendering context.
func NewBackend(surface Surface, ctx Context) *Backend {
	if surface == nil || ctx == nil {
		return nil
	}
	b := Backend{
		surface: surface,
		ctx:     ctx,
	}
	return &b
}

// Size gets the current width and height of the canvas in pixels.
// The values are read from the canvas each call because the host page can resize it.
func (b *Backend) Size() (width, height int) {
	return b.surface.Width(), b.surface.Height()
}

// Open starts a drawing session.  The canvas has no session state, so this always succeeds.
func (b *Backend) Open() error {
	return nil
}

// Close ends a drawing session.  The canvas has no session state, so this always succeeds.
func (b *Backend) Close() error {
	return nil
}

// DrawPixel fills a 1x1 rectangle at the point.
func (b *Backend) DrawPixel(p draw.Coord, c draw.Color) error {
	b.ctx.SetFillColor(canvasColor(c))
	b.ctx.FillRect(p.X, p.Y, 1, 1)
	return nil
}

// DrawLine strokes a straight path between the two points.
func (b *Backend) DrawLine(from, to draw.Coord, c draw.Color) error {
	b.ctx.SetStrokeColor(canvasColor(c))
	b.ctx.BeginPath()
	b.ctx.MoveTo(from.X, from.Y)
	b.ctx.LineTo(to.X, to.Y)
	b.ctx.Stroke()
	return nil
}

// DrawRect fills or strokes the rectangle between the corners.
// The extents are bottomRight minus upperLeft; corners supplied out of order
// produce a negative-size call whose behavior is up to the rendering context.
func (b *Backend) DrawRect(upperLeft, bottomRight draw.Coord, c draw.Color, fill bool) error {
	width := bottomRight.X - upperLeft.X
	height := bottomRight.Y - upperLeft.Y
	switch {
	case fill:
		b.ctx.SetFillColor(canvasColor(c))
		b.ctx.FillRect(upperLeft.X, upperLeft.Y, width, height)
	default:
		b.ctx.SetStrokeColor(canvasColor(c))
		b.ctx.StrokeRect(upperLeft.X, upperLeft.Y, width, height)
	}
	return nil
}

// DrawPath strokes connected segments through the points.
// An empty point list strokes an empty path, which draws nothing.
func (b *Backend) DrawPath(points []draw.Coord, c draw.Color) error {
	b.ctx.BeginPath()
	if len(points) > 0 {
		b.ctx.SetStrokeColor(canvasColor(c))
		b.ctx.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			b.ctx.LineTo(p.X, p.Y)
		}
	}
	b.ctx.Stroke()
	return nil
}

// DrawCircle fills or strokes a full arc around the center.
func (b *Backend) DrawCircle(center draw.Coord, radius int, c draw.Color, fill bool) error {
	switch {
	case fill:
		b.ctx.SetFillColor(canvasColor(c))
	default:
		b.ctx.SetStrokeColor(canvasColor(c))
	}
	b.ctx.BeginPath()
	if err := b.ctx.Arc(float64(center.X), float64(center.Y), float64(radius), 0, 2*math.Pi); err != nil {
		return &draw.Error{Cause: err}
	}
	switch {
	case fill:
		b.ctx.Fill()
	default:
		b.ctx.Stroke()
	}
	return nil
}

// DrawText fills text with its top-left corner at pos.
// The fill position is offset down by the font size because the text baseline is set to "bottom".
func (b *Backend) DrawText(text string, f draw.Font, pos draw.Coord, c draw.Color) error {
	b.ctx.SetTextBaseline("bottom")
	b.ctx.SetFillColor(canvasColor(c))
	b.ctx.SetFont(fontString(f))
	if err := b.ctx.FillText(text, float64(pos.X), float64(pos.Y)+f.Size()); err != nil {
		return &draw.Error{Cause: err}
	}
	return nil
}

// canvasColor formats the color as a css rgba function string.
func canvasColor(c draw.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("rgba(%d,%d,%d,%v)", r, g, b, c.Alpha())
}

// fontString formats the font as a css font shorthand.
func fontString(f draw.Font) string {
	return fmt.Sprintf("%vpx %v", f.Size(), f.Name())
}
