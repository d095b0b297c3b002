package canvas

type mockSurface struct {
	WidthFunc  func() int
	HeightFunc func() int
}

func (s mockSurface) Width() int {
	return s.WidthFunc()
}

func (s mockSurface) Height() int {
	return s.HeightFunc()
}

type mockContext struct {
	SetFillColorFunc    func(name string)
	SetStrokeColorFunc  func(name string)
	SetFontFunc         func(name string)
	SetTextBaselineFunc func(baseline string)
	FillRectFunc        func(x, y, width, height int)
	StrokeRectFunc      func(x, y, width, height int)
	BeginPathFunc       func()
	MoveToFunc          func(x, y int)
	LineToFunc          func(x, y int)
	StrokeFunc          func()
	FillFunc            func()
	ArcFunc             func(x, y, radius, startAngle, endAngle float64) error
	FillTextFunc        func(text string, x, y float64) error
}

func (ctx *mockContext) SetFillColor(name string) {
	ctx.SetFillColorFunc(name)
}

func (ctx *mockContext) SetStrokeColor(name string) {
	ctx.SetStrokeColorFunc(name)
}

func (ctx *mockContext) SetFont(name string) {
	ctx.SetFontFunc(name)
}

func (ctx *mockContext) SetTextBaseline(baseline string) {
	ctx.SetTextBaselineFunc(baseline)
}

func (ctx *mockContext) FillRect(x, y, width, height int) {
	ctx.FillRectFunc(x, y, width, height)
}

func (ctx *mockContext) StrokeRect(x, y, width, height int) {
	ctx.StrokeRectFunc(x, y, width, height)
}

func (ctx *mockContext) BeginPath() {
	ctx.BeginPathFunc()
}

func (ctx *mockContext) MoveTo(x, y int) {
	ctx.MoveToFunc(x, y)
}

func (ctx *mockContext) LineTo(x, y int) {
	ctx.LineToFunc(x, y)
}

func (ctx *mockContext) Stroke() {
	ctx.StrokeFunc()
}

func (ctx *mockContext) Fill() {
	ctx.FillFunc()
}

func (ctx *mockContext) Arc(x, y, radius, startAngle, endAngle float64) error {
	return ctx.ArcFunc(x, y, radius, startAngle, endAngle)
}

func (ctx *mockContext) FillText(text string, x, y float64) error {
	return ctx.FillTextFunc(text, x, y)
}
