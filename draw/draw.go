// Package draw defines the contract between chart-rendering code and the
// surface the chart is painted on.  Renderers emit primitive shapes through a
// Backend without knowing whether the output is an HTML canvas or a test
// recorder.
package draw

type (
	// Coord identifies a pixel position in backend space.
	Coord struct {
		X int
		Y int
	}

	// Color supplies the channel values for a drawing primitive.
	// Backends convert it to their native color representation on every call.
	Color interface {
		// RGB gets the red, green, and blue channels.
		RGB() (r, g, b uint8)
		// Alpha gets the opacity in the range [0, 1].
		Alpha() float64
	}

	// Font describes the typeface to draw text with.
	Font interface {
		// Size gets the font size in pixels.
		Size() float64
		// Name gets the font family name.
		Name() string
	}

	// Backend is implemented by each output surface.
	// Draw calls are stateless with respect to the chart being rendered; each
	// call's effect is fully determined by its arguments.
	Backend interface {
		// Size gets the current width and height of the surface in pixels.
		Size() (width, height int)
		// Open starts a drawing session.
		Open() error
		// Close ends a drawing session.
		Close() error
		// DrawPixel paints a single pixel.
		DrawPixel(p Coord, c Color) error
		// DrawLine paints a straight line between two points.
		DrawLine(from, to Coord, c Color) error
		// DrawRect paints a rectangle between two corners, filled or outlined.
		DrawRect(upperLeft, bottomRight Coord, c Color, fill bool) error
		// DrawPath paints connected line segments through the points.
		DrawPath(points []Coord, c Color) error
		// DrawCircle paints a circle, filled or outlined.
		DrawCircle(center Coord, radius int, c Color, fill bool) error
		// DrawText paints text with its top-left corner at pos.
		DrawText(text string, f Font, pos Coord, c Color) error
	}
)

// RGBA is a Color with 8-bit channels and a fractional alpha.
type RGBA struct {
	R uint8
	G uint8
	B uint8
	A float64
}

// RGB gets the red, green, and blue channels.
func (c RGBA) RGB() (r, g, b uint8) {
	return c.R, c.G, c.B
}

// Alpha gets the opacity.
func (c RGBA) Alpha() float64 {
	return c.A
}

// FontDesc is a Font with a pixel size and a family name.
type FontDesc struct {
	SizePx float64
	Family string
}

// Size gets the font size in pixels.
func (f FontDesc) Size() float64 {
	return f.SizePx
}

// Name gets the font family name.
func (f FontDesc) Name() string {
	return f.Family
}

// Error is returned when the output surface reports a failure for a draw
// operation, as opposed to a setup or configuration problem.  The surface's
// native failure value is kept opaque; only its rendering is exposed.
type Error struct {
	Cause error
}

// Error describes the wrapped surface failure.
func (e *Error) Error() string {
	return "drawing error: " + e.Cause.Error()
}

// Unwrap gets the wrapped surface failure.
func (e *Error) Unwrap() error {
	return e.Cause
}
