package scope

import (
	"math"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/space"
	"github.com/itohio/gographer/pkg/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope(t *testing.T) (*ScopeWidget, *scopeRenderer) {
	t.Helper()
	test.NewTempApp(t)

	cfg := config.Default()
	cfg.Window.Seconds = 10

	s := New(cfg)
	s.Resize(fyne.NewSize(480, 340))

	r, ok := test.WidgetRenderer(s).(*scopeRenderer)
	require.True(t, ok)
	return s, r
}

func sine(n int) []sample.Point {
	points := make([]sample.Point, n)
	for i := range points {
		x := float64(i) * 0.05
		points[i] = sample.Point{X: x, Y: 2 + math.Sin(x)}
	}
	return points
}

func TestScope_Empty(t *testing.T) {
	_, r := newScope(t)
	r.Refresh()

	require.NotNil(t, r.status)
	assert.Equal(t, "No data", r.status.Text)
	assert.Zero(t, r.segments)
}

func TestScope_DrawsGeometry(t *testing.T) {
	s, r := newScope(t)

	s.UpdateData(sine(400), nil)
	r.Refresh()

	assert.Nil(t, r.status)
	assert.Greater(t, r.segments, 0)

	// The surface follows the plot area
	opts := r.pipeline.Options()
	assert.Equal(t, 400.0, opts.Width)
	assert.Equal(t, 280.0, opts.Height)
}

func TestScope_DashDrawsFewerSegments(t *testing.T) {
	s, r := newScope(t)

	s.UpdateData(sine(400), nil)
	r.Refresh()
	solid := r.segments

	s.SetDash(vertex.Dash{On: 3, Off: 3})
	r.Refresh()

	assert.Greater(t, r.segments, 0)
	assert.Less(t, r.segments, solid)
	assert.Equal(t, vertex.Dash{On: 3, Off: 3}, s.Options().Dash)
}

func TestScope_OnlyNulls(t *testing.T) {
	s, r := newScope(t)

	points := []sample.Point{{X: 0, Null: true}, {X: 1, Null: true}}
	s.UpdateData(points, []graph.Gap{{StartX: 0, EndX: 1, Count: 2}})
	r.Refresh()

	require.NotNil(t, r.status)
	assert.Equal(t, "No values in window", r.status.Text)
}

func TestScope_LogScale(t *testing.T) {
	s, r := newScope(t)

	points := make([]sample.Point, 200)
	for i := range points {
		points[i] = sample.Point{X: float64(i) * 0.05, Y: math.Pow(10, float64(i%4))}
	}
	s.UpdateData(points, nil)
	s.SetScale(space.Log)
	s.SetWindow(5 * time.Second)
	r.Refresh()

	assert.Nil(t, r.status)
	assert.Greater(t, r.segments, 0)
	assert.Equal(t, space.Log, r.pipeline.Options().Scale)
}

func TestScope_ApplyConfig(t *testing.T) {
	s, r := newScope(t)

	cfg := config.Default()
	cfg.View.Scale = "log"
	cfg.Line.Dashed = true
	cfg.Line.Dash = [2]int{4, 1}
	cfg.Line.Width = 3
	cfg.Window.Seconds = 2
	s.ApplyConfig(cfg)

	_, _, opts, window, lineWidth := s.snapshot()
	assert.Equal(t, space.Log, opts.Scale)
	assert.Equal(t, vertex.Dash{On: 4, Off: 1}, opts.Dash)
	assert.Equal(t, 2*time.Second, window)
	assert.Equal(t, float32(3), lineWidth)

	s.UpdateData(sine(400), nil)
	r.Refresh()
	assert.Greater(t, r.segments, 0)
}

func TestLabelValue(t *testing.T) {
	linear := space.Params{YMin: 0, YMax: 8}
	assert.Equal(t, 8.0, labelValue(linear, 0, 8))
	assert.Equal(t, 4.0, labelValue(linear, 4, 8))
	assert.Equal(t, 0.0, labelValue(linear, 8, 8))

	log := space.Params{YMin: 0, YMax: 3, Mode: space.Log}
	assert.InDelta(t, 1000.0, labelValue(log, 0, 3), 1e-9)
	assert.InDelta(t, 10.0, labelValue(log, 2, 3), 1e-9)
	assert.InDelta(t, 1.0, labelValue(log, 3, 3), 1e-9)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1e-15, "0"},
		{1.5, "1.500"},
		{-2.25, "-2.250"},
		{123456, "1.23e+05"},
		{0.0001, "1.00e-04"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0.00s", formatTime(0))
	assert.Equal(t, "-0.50s", formatTime(-500*time.Millisecond))
	assert.Equal(t, "-10.0s", formatTime(-10*time.Second))
	assert.Equal(t, "2.5s", formatTime(2500*time.Millisecond))
}
