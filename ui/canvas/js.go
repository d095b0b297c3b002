//go:build js && wasm

package canvas

import (
	"fmt"
	"strings"
	"syscall/js"
)

// New creates a backend that draws on the canvas element with the id.
// Nil is returned if the element cannot be found, is not a canvas, or has no
// 2d rendering context; callers must abort chart initialization when this happens.
func New(elemID string) (b *Backend) {
	defer func() {
		if recover() != nil {
			b = nil
		}
	}()
	document := js.Global().Get("document")
	if !document.Truthy() {
		return nil
	}
	element := document.Call("getElementById", elemID)
	if !element.Truthy() {
		return nil
	}
	tagName := element.Get("tagName")
	if tagName.Type() != js.TypeString || !strings.EqualFold(tagName.String(), "canvas") {
		return nil
	}
	ctx := element.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil
	}
	return NewBackend(jsSurface{element}, &jsContext{ctx})
}

// jsSurface implements the canvas surface interface for a canvas element.
type jsSurface struct {
	element js.Value
}

func (s jsSurface) Width() int {
	return s.element.Get("width").Int()
}

func (s jsSurface) Height() int {
	return s.element.Get("height").Int()
}

// jsContext implements the canvas context interface for javascript values.
type jsContext struct {
	ctx js.Value
}

func (c *jsContext) SetFillColor(name string) {
	c.ctx.Set("fillStyle", name)
}

func (c *jsContext) SetStrokeColor(name string) {
	c.ctx.Set("strokeStyle", name)
}

func (c *jsContext) SetFont(name string) {
	c.ctx.Set("font", name)
}

func (c *jsContext) SetTextBaseline(baseline string) {
	c.ctx.Set("textBaseline", baseline)
}

func (c *jsContext) FillRect(x, y, width, height int) {
	c.ctx.Call("fillRect", x, y, width, height)
}

func (c *jsContext) StrokeRect(x, y, width, height int) {
	c.ctx.Call("strokeRect", x, y, width, height)
}

func (c *jsContext) BeginPath() {
	c.ctx.Call("beginPath")
}

func (c *jsContext) MoveTo(x, y int) {
	c.ctx.Call("moveTo", x, y)
}

func (c *jsContext) LineTo(x, y int) {
	c.ctx.Call("lineTo", x, y)
}

func (c *jsContext) Stroke() {
	c.ctx.Call("stroke")
}

func (c *jsContext) Fill() {
	c.ctx.Call("fill")
}

// Arc adds the arc to the current path, converting a thrown exception into an error.
func (c *jsContext) Arc(x, y, radius, startAngle, endAngle float64) (err error) {
	defer catchValue(&err)
	c.ctx.Call("arc", x, y, radius, startAngle, endAngle)
	return nil
}

// FillText paints the text, converting a thrown exception into an error.
func (c *jsContext) FillText(text string, x, y float64) (err error) {
	defer catchValue(&err)
	c.ctx.Call("fillText", text, x, y)
	return nil
}

// catchValue recovers a panic from a rendering context call into the error.
// Calls into javascript panic when the underlying function throws.
func catchValue(err *error) {
	switch r := recover().(type) {
	case nil:
	case js.Error:
		*err = valueError{r.Value}
	case error:
		*err = r
	default:
		*err = fmt.Errorf("%v", r)
	}
}

// valueError is an error around an opaque value thrown by the rendering context.
type valueError struct {
	value js.Value
}

// Error renders the thrown value for diagnostics.
func (e valueError) Error() string {
	return "canvas error: " + stringify(e.value)
}

// stringify converts the value to its json representation, falling back to
// "Unknown" when the value cannot be stringified.
func stringify(v js.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = "Unknown"
		}
	}()
	result := js.Global().Get("JSON").Call("stringify", v)
	if result.Type() != js.TypeString {
		return "Unknown"
	}
	return result.String()
}
