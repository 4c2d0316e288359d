package charts

// AreaOpts customises the area chart renderer.
type AreaOpts struct {
	Title       string
	Description string
	StrokeColor string
	FillColor   string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
}

// HBarOpts customises the horizontal bar chart renderer.
type HBarOpts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	LabelWidth  float64
	TickCount   int
}

// Defaults for the dashboard charts.
const (
	DefaultWidth     = 720
	DefaultHeight    = 260
	DefaultPadding   = 28.0
	DefaultTicks     = 5
	DefaultBarHeight = 26.0
)
