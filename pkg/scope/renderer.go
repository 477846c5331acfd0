package scope

import (
	"errors"
	"image/color"
	"math"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/space"
)

const (
	marginLeft   = float32(60.0)
	marginRight  = float32(20.0)
	marginTop    = float32(20.0)
	marginBottom = float32(40.0)

	numHLines = 8
	numVLines = 10
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	lineColor  = color.RGBA{R: 255, G: 165, B: 0, A: 255} // Orange
	gapColor   = color.RGBA{R: 60, G: 30, B: 30, A: 160}
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	background *canvas.Rectangle

	// Runs on the UI thread only
	pipeline *graph.Pipeline

	// Status text shown instead of a line when there is nothing to draw
	status *canvas.Text

	// Number of line segments drawn by the last refresh
	segments int

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	// Background fills entire widget
	r.background.Resize(size)

	// Check if size changed
	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, trigger widget refresh to redraw with new dimensions
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	points, gaps, opts, window, lineWidth := r.scope.snapshot()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	// Clear old objects (but keep background)
	r.objects = []fyne.CanvasObject{r.background}
	r.status = nil
	r.segments = 0

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	// The surface is the plot area
	opts.Width = float64(plotWidth)
	opts.Height = float64(plotHeight)
	if opts != r.pipeline.Options() {
		r.pipeline.SetOptions(opts)
	}

	if len(points) == 0 {
		r.drawGrid(plotX, plotY, plotWidth, plotHeight, space.Params{YMin: 0, YMax: 1}, window)
		r.drawStatus(plotX, plotY, "No data")
		return
	}

	maxX := points[len(points)-1].X
	minX := maxX - window.Seconds()

	frame, err := r.pipeline.Render(points, minX, maxX)
	if err != nil {
		r.drawGrid(plotX, plotY, plotWidth, plotHeight, space.Params{YMin: 0, YMax: 1}, window)
		if errors.Is(err, graph.ErrEmptyRange) {
			r.drawStatus(plotX, plotY, "No values in window")
		} else {
			r.drawStatus(plotX, plotY, err.Error())
		}
		return
	}

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, frame.Params, window)
	r.drawGaps(plotX, plotY, plotWidth, plotHeight, gaps, minX, maxX)
	r.drawGeometry(plotX, plotY, frame, lineWidth)
}

// drawGrid draws the oscilloscope-style grid with value and time labels.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, params space.Params, window time.Duration) {
	// Horizontal grid lines (values)
	for i := range numHLines + 1 {
		y := plotY + float32(i)*plotHeight/float32(numHLines)
		r.addLine(gridColor, 1, fyne.NewPos(plotX, y), fyne.NewPos(plotX+plotWidth, y))

		text := canvas.NewText(formatValue(labelValue(params, i, numHLines)), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.objects = append(r.objects, text)
	}

	// Vertical grid lines (time, relative to the newest point)
	for i := range numVLines + 1 {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		r.addLine(gridColor, 1, fyne.NewPos(x, plotY), fyne.NewPos(x, plotY+plotHeight))

		offset := window - time.Duration(i)*window/numVLines
		text := canvas.NewText(formatTime(-offset), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}
}

// drawGaps shades the spans of null samples inside [minX, maxX].
func (r *scopeRenderer) drawGaps(plotX, plotY, plotWidth, plotHeight float32, gaps []graph.Gap, minX, maxX float64) {
	span := maxX - minX
	for _, gap := range gaps {
		if gap.EndX < minX || gap.StartX > maxX {
			continue
		}
		x0 := plotX + float32((math.Max(gap.StartX, minX)-minX)/span)*plotWidth
		x1 := plotX + float32((math.Min(gap.EndX, maxX)-minX)/span)*plotWidth

		rect := canvas.NewRectangle(gapColor)
		rect.Move(fyne.NewPos(x0, plotY))
		rect.Resize(fyne.NewSize(max(x1-x0, 1), plotHeight))
		r.objects = append(r.objects, rect)
	}
}

// drawGeometry draws one segment per extracted point, from its previous
// position to its position.
func (r *scopeRenderer) drawGeometry(plotX, plotY float32, frame *graph.Frame, lineWidth float32) {
	g := frame.Geometry
	for p := range frame.Points {
		if g.SegmentLength(p) == 0 {
			continue
		}
		x, y := g.Position(p)
		px, py := g.Prev(p)
		r.addLine(lineColor, lineWidth, fyne.NewPos(plotX+px, plotY+py), fyne.NewPos(plotX+x, plotY+y))
		r.segments++
	}
}

func (r *scopeRenderer) drawStatus(plotX, plotY float32, msg string) {
	text := canvas.NewText(msg, labelColor)
	text.TextSize = 12
	text.Alignment = fyne.TextAlignLeading
	text.Move(fyne.NewPos(plotX+10, plotY+10))
	r.status = text
	r.objects = append(r.objects, text)
}

func (r *scopeRenderer) addLine(c color.Color, width float32, from, to fyne.Position) {
	line := canvas.NewLine(c)
	line.Position1 = from
	line.Position2 = to
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}

// labelValue returns the unscaled value of horizontal grid line i of n,
// counted from the top of the view.
func labelValue(params space.Params, i, n int) float64 {
	v := params.YMax - float64(i)*(params.YMax-params.YMin)/float64(n)
	if params.Mode == space.Log {
		return math.Pow(10, v)
	}
	return v
}

// Helper functions for formatting

func formatValue(v float64) string {
	if v == 0 || math.Abs(v) < 1e-12 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e5 || abs < 1e-3 {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatTime(d time.Duration) string {
	s := d.Seconds()
	if math.Abs(s) < 1 {
		return strconv.FormatFloat(s, 'f', 2, 64) + "s"
	}
	return strconv.FormatFloat(s, 'f', 1, 64) + "s"
}
