package chartview

import "chartdash/draw"

type mockBackend struct {
	SizeFunc       func() (width, height int)
	OpenFunc       func() error
	CloseFunc      func() error
	DrawPixelFunc  func(p draw.Coord, c draw.Color) error
	DrawLineFunc   func(from, to draw.Coord, c draw.Color) error
	DrawRectFunc   func(upperLeft, bottomRight draw.Coord, c draw.Color, fill bool) error
	DrawPathFunc   func(points []draw.Coord, c draw.Color) error
	DrawCircleFunc func(center draw.Coord, radius int, c draw.Color, fill bool) error
	DrawTextFunc   func(text string, f draw.Font, pos draw.Coord, c draw.Color) error
}

func (b *mockBackend) Size() (width, height int) {
	return b.SizeFunc()
}

func (b *mockBackend) Open() error {
	return b.OpenFunc()
}

func (b *mockBackend) Close() error {
	return b.CloseFunc()
}

func (b *mockBackend) DrawPixel(p draw.Coord, c draw.Color) error {
	return b.DrawPixelFunc(p, c)
}

func (b *mockBackend) DrawLine(from, to draw.Coord, c draw.Color) error {
	return b.DrawLineFunc(from, to, c)
}

func (b *mockBackend) DrawRect(upperLeft, bottomRight draw.Coord, c draw.Color, fill bool) error {
	return b.DrawRectFunc(upperLeft, bottomRight, c, fill)
}

func (b *mockBackend) DrawPath(points []draw.Coord, c draw.Color) error {
	return b.DrawPathFunc(points, c)
}

func (b *mockBackend) DrawCircle(center draw.Coord, radius int, c draw.Color, fill bool) error {
	return b.DrawCircleFunc(center, radius, c, fill)
}

func (b *mockBackend) DrawText(text string, f draw.Font, pos draw.Coord, c draw.Color) error {
	return b.DrawTextFunc(text, f, pos, c)
}

// noopBackend creates a backend where every operation succeeds on a 200x100 surface.
func noopBackend() *mockBackend {
	return &mockBackend{
		SizeFunc: func() (width, height int) {
			return 200, 100
		},
		OpenFunc: func() error {
			return nil
		},
		CloseFunc: func() error {
			return nil
		},
		DrawPixelFunc: func(p draw.Coord, c draw.Color) error {
			return nil
		},
		DrawLineFunc: func(from, to draw.Coord, c draw.Color) error {
			return nil
		},
		DrawRectFunc: func(upperLeft, bottomRight draw.Coord, c draw.Color, fill bool) error {
			return nil
		},
		DrawPathFunc: func(points []draw.Coord, c draw.Color) error {
			return nil
		},
		DrawCircleFunc: func(center draw.Coord, radius int, c draw.Color, fill bool) error {
			return nil
		},
		DrawTextFunc: func(text string, f draw.Font, pos draw.Coord, c draw.Color) error {
			return nil
		},
	}
}
