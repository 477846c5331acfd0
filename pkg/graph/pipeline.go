package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/space"
	"github.com/itohio/gographer/pkg/vertex"
)

var (
	// ErrEmptyRange is returned when the x range or the y bounds of a frame
	// have no extent to normalize against.
	ErrEmptyRange = errors.New("empty range")
	// ErrViewTooSmall is returned when the view has fewer than two columns.
	ErrViewTooSmall = errors.New("view too small")
)

// Options configures how a Pipeline turns points into geometry.
type Options struct {
	Width       float64 // Surface width in pixels
	Height      float64 // Surface height in pixels
	DPIIncrease float64 // Surface pixels per decimated column
	Scale       space.Scale
	Percentile  float64 // Y bounds percentile (100 = full range)
	Asymmetry   float64 // Percentile asymmetry in percentage points
	Padding     float64 // Fraction of the y extent added around the bounds
	Dash        vertex.Dash
}

// OptionsFromConfig builds Options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	dash := vertex.Solid
	if cfg.Line.Dashed {
		dash = vertex.Dash{On: cfg.Line.Dash[0], Off: cfg.Line.Dash[1]}
	}

	return Options{
		Width:       cfg.View.Width,
		Height:      cfg.View.Height,
		DPIIncrease: cfg.View.DPIIncrease,
		Scale:       space.ParseScale(cfg.View.Scale),
		Percentile:  cfg.View.Percentile,
		Asymmetry:   cfg.View.Asymmetry,
		Padding:     cfg.View.Padding,
		Dash:        dash,
	}
}

// Frame is the result of one Pipeline.Render. Series and Geometry alias the
// pipeline's buffers and stay valid until the next Render.
type Frame struct {
	Params   space.Params // View the series was decimated against (scaled y)
	MinY     float64      // Unscaled y at the bottom of the view
	MaxY     float64      // Unscaled y at the top of the view
	XScale   float64      // Surface pixels per column
	Series   *space.RenderSeries
	Geometry *vertex.Geometry
	Points   int // Logical points in Geometry
}

// Pipeline runs select, bounds, condense, pack, decimate, count and extract over a
// window of points, reusing its buffers between frames. It is not safe for
// concurrent use.
type Pipeline struct {
	opts Options

	selected  []sample.Point
	condensed []sample.Point
	packed    sample.Packed
	series    space.RenderSeries
	geometry  vertex.Geometry

	changed    bool
	condensing bool
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts, changed: true}
}

// Options returns the current options.
func (p *Pipeline) Options() Options {
	return p.opts
}

// SetOptions replaces the options; the next frame is rebuilt from scratch.
func (p *Pipeline) SetOptions(opts Options) {
	p.opts = opts
	p.changed = true
}

// Invalidate forces the next frame to repack every point. Render assumes
// that between calls with the same minX the points only grow at the end;
// call Invalidate when that does not hold.
func (p *Pipeline) Invalidate() {
	p.changed = true
}

// Render builds a frame for points, sorted by x, over [minX, maxX].
func (p *Pipeline) Render(points []sample.Point, minX, maxX float64) (*Frame, error) {
	if !(maxX > minX) {
		return nil, fmt.Errorf("x range [%v, %v]: %w", minX, maxX, ErrEmptyRange)
	}

	dpi := p.opts.DPIIncrease
	if dpi <= 0 {
		dpi = 1
	}
	columns := p.opts.Width / dpi
	if columns < 2 || p.opts.Height <= 0 {
		return nil, fmt.Errorf("%vx%v at %v pixels per column: %w", p.opts.Width, p.opts.Height, dpi, ErrViewTooSmall)
	}

	p.selected = sample.Select(p.selected, points, minX, maxX)
	if p.opts.Scale == space.Log {
		nullNonPositive(p.selected)
	}

	bounds := sample.CalculateBounds(p.selected, p.opts.Percentile, p.opts.Asymmetry)
	if !bounds.HasY {
		p.changed = true
		return nil, fmt.Errorf("no values in [%v, %v]: %w", minX, maxX, ErrEmptyRange)
	}

	// Padding is applied in scaled space so log bounds stay positive
	scaled := sample.Bounds{HasY: true}
	scaled.MinY, scaled.MaxY = space.ScaleBounds(bounds.MinY, bounds.MaxY, p.opts.Scale)
	scaled = scaled.Pad(p.opts.Padding)

	params := space.Params{
		Width:  columns,
		Height: p.opts.Height,
		XMin:   minX,
		XMax:   maxX,
		YMin:   scaled.MinY,
		YMax:   scaled.MaxY,
		Mode:   p.opts.Scale,
	}

	// A condensed series is rebuilt every frame, so it is always repacked
	input, condensed := sample.Condense(p.condensed, p.selected, minX, maxX, columns)
	if condensed {
		p.condensed = input
	}
	sample.Pack(&p.packed, input, minX, maxX, p.changed || condensed || p.condensing)
	p.changed = false
	p.condensing = condensed

	p.series.Resize(space.Columns(params))
	space.SelectedToRender(p.packed.Length, p.packed.Data, p.packed.NullMask, params, &p.series)

	n := vertex.PointCount(&p.series, p.opts.Dash)
	p.geometry.Resize(n)
	n = vertex.Extract(dpi, &p.series, p.opts.Dash, &p.geometry)

	minY, maxY := unscale(scaled.MinY, scaled.MaxY, p.opts.Scale)

	return &Frame{
		Params:   params,
		MinY:     minY,
		MaxY:     maxY,
		XScale:   dpi,
		Series:   &p.series,
		Geometry: &p.geometry,
		Points:   n,
	}, nil
}

// nullNonPositive marks points the log scale cannot represent as gaps.
func nullNonPositive(points []sample.Point) {
	for i := range points {
		if !points[i].Null && points[i].Y <= 0 {
			points[i].Null = true
			points[i].Y = 0
		}
	}
}

// unscale maps scaled y bounds back to values for axis labels.
func unscale(minY, maxY float64, scale space.Scale) (float64, float64) {
	if scale != space.Log {
		return minY, maxY
	}
	return math.Pow(10, minY), math.Pow(10, maxY)
}
