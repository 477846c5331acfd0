package space

import "math"

// Scale selects how y values are mapped onto the render height.
type Scale int

const (
	Linear Scale = iota
	Log
)

// ParseScale converts the host's scale string. Only "log" selects
// logarithmic y; anything else is linear.
func ParseScale(s string) Scale {
	if s == "log" {
		return Log
	}
	return Linear
}

// String returns the host representation of the scale.
func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

// ViewParams is the view description supplied by the host for one
// decimation call.
type ViewParams interface {
	RenderWidth() float64
	RenderHeight() float64
	MinX() float64
	MaxX() float64
	MinY() float64
	MaxY() float64
	Scale() string
}

// Params is a plain ViewParams value.
// MinY and MaxY are in scaled space: for log scale pass the result of ScaleBounds.
type Params struct {
	Width  float64 // Render width in pixels (may be fractional)
	Height float64 // Render height in pixels
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	Mode   Scale
}

var _ ViewParams = Params{}

func (p Params) RenderWidth() float64  { return p.Width }
func (p Params) RenderHeight() float64 { return p.Height }
func (p Params) MinX() float64         { return p.XMin }
func (p Params) MaxX() float64         { return p.XMax }
func (p Params) MinY() float64         { return p.YMin }
func (p Params) MaxY() float64         { return p.YMax }
func (p Params) Scale() string         { return p.Mode.String() }

// Columns returns the number of output pixel columns for the view.
func Columns(p ViewParams) int {
	w := math.Ceil(p.RenderWidth())
	if w <= 0 {
		return 0
	}
	return int(w)
}

// ScaleBounds converts y bounds from value space into the scaled space the
// Decimator normalizes against. Linear bounds are returned unchanged.
// For log scale a non-positive minimum is replaced so the range stays usable.
func ScaleBounds(minY, maxY float64, scale Scale) (float64, float64) {
	if scale != Log {
		return minY, maxY
	}

	maxY = math.Log10(maxY)
	if minY <= 0 {
		if maxY > 0 {
			minY = -maxY
		} else {
			minY = 2 * maxY
		}
	} else {
		minY = math.Log10(minY)
	}

	return minY, maxY
}
