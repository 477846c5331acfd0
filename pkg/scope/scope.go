package scope

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/space"
	"github.com/itohio/gographer/pkg/vertex"
)

// ScopeWidget is a custom Fyne widget that displays a sliding window of
// points as decimated line geometry.
type ScopeWidget struct {
	widget.BaseWidget

	// Data and view settings (protected by mu)
	mu        sync.RWMutex
	points    []sample.Point
	gaps      []graph.Gap
	opts      graph.Options
	window    time.Duration
	lineWidth float32
}

// New creates a new ScopeWidget instance.
func New(cfg *config.Config) *ScopeWidget {
	s := &ScopeWidget{
		points:    make([]sample.Point, 0),
		gaps:      make([]graph.Gap, 0),
		opts:      graph.OptionsFromConfig(cfg),
		window:    cfg.WindowDuration(),
		lineWidth: float32(cfg.Line.Width),
	}
	s.ExtendBaseWidget(s)
	// Trigger initial refresh to display empty scope
	s.Refresh()
	return s
}

// UpdateData updates the widget with a new snapshot of the buffer.
// This should be called from the buffer callback using fyne.Do().
func (s *ScopeWidget) UpdateData(points []sample.Point, gaps []graph.Gap) {
	s.mu.Lock()
	s.points = points
	s.gaps = gaps
	s.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	s.Refresh()
}

// SetScale switches between linear and logarithmic y.
func (s *ScopeWidget) SetScale(scale space.Scale) {
	s.mu.Lock()
	s.opts.Scale = scale
	s.mu.Unlock()
	s.Refresh()
}

// SetDash sets the dash pattern; vertex.Solid draws a solid line.
func (s *ScopeWidget) SetDash(dash vertex.Dash) {
	s.mu.Lock()
	s.opts.Dash = dash
	s.mu.Unlock()
	s.Refresh()
}

// SetWindow sets the visible time span.
func (s *ScopeWidget) SetWindow(window time.Duration) {
	s.mu.Lock()
	s.window = window
	s.mu.Unlock()
	s.Refresh()
}

// ApplyConfig replaces every view setting with the values from cfg.
func (s *ScopeWidget) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.opts = graph.OptionsFromConfig(cfg)
	s.window = cfg.WindowDuration()
	s.lineWidth = float32(cfg.Line.Width)
	s.mu.Unlock()
	s.Refresh()
}

// Options returns the current render options.
func (s *ScopeWidget) Options() graph.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// snapshot returns the data and settings a single refresh works from.
func (s *ScopeWidget) snapshot() ([]sample.Point, []graph.Gap, graph.Options, time.Duration, float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points, s.gaps, s.opts, s.window, s.lineWidth
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:      s,
		background: background,
		pipeline:   graph.NewPipeline(s.Options()),
		objects:    []fyne.CanvasObject{background},
		lastSize:   fyne.Size{Width: 0, Height: 0},
	}
}
