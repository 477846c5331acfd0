package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/raster"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/space"
	"github.com/itohio/gographer/pkg/vertex"
)

var (
	snapshotBackground = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	snapshotGrid       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	snapshotLine       = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	snapshotFill       = color.NRGBA{R: 255, G: 165, B: 0, A: 48}
)

// runSnapshot collects samples for duration and writes the last window as a PNG.
func runSnapshot(cfg *config.Config, useMock bool, path string, duration time.Duration) error {
	buffer := graph.NewBuffer(cfg.WindowDuration())

	device := newDevice(cfg, useMock)
	if err := device.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	chain := startSampleChain(device, cfg, buffer)

	time.Sleep(duration)
	closeSampleChain(chain)

	return writeSnapshot(cfg, buffer.Points(), path)
}

// writeSnapshot renders points against the configured view and encodes the
// result into path. The area between the line and zero is shaded, and a
// dashed line restarts its pattern after every gap.
func writeSnapshot(cfg *config.Config, points []sample.Point, path string) error {
	if len(points) == 0 {
		return errors.New("no samples collected")
	}

	maxX := points[len(points)-1].X
	minX := maxX - cfg.Window.Seconds

	opts := graph.OptionsFromConfig(cfg)
	frame, err := graph.NewPipeline(opts).Render(points, minX, maxX)
	if err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}

	width, height := int(cfg.View.Width), int(cfg.View.Height)
	c := raster.NewCanvas(width, height, snapshotBackground)
	for i := range 9 {
		c.HLine(float32(i*height)/8, 1, snapshotGrid)
	}
	for i := range 11 {
		c.VLine(float32(i*width)/10, 1, snapshotGrid)
	}

	base := baseline(frame)
	c.Area(vertex.SplitPaths(frame.XScale, frame.Series, float64(base)), base, snapshotFill)

	paths := vertex.Paths(frame.XScale, frame.Series)
	line := vertex.NewGeometry(vertex.PathPointCount(paths, opts.Dash))
	vertex.ExtractPaths(paths, opts.Dash, line)
	c.Lines(line, raster.Style{Width: float32(cfg.Line.Width), Color: snapshotLine})

	return c.WritePNG(path)
}

// baseline returns the render y of zero clamped to the view. Log views have
// no zero and use the bottom edge.
func baseline(frame *graph.Frame) float32 {
	p := frame.Params
	if p.Mode == space.Log {
		return float32(p.Height)
	}
	y := p.Height * (1 - (0-p.YMin)/(p.YMax-p.YMin))
	return float32(min(max(y, 0), p.Height))
}
