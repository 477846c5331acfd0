// Package raster draws line geometry into images on the CPU. It extrudes each
// segment quad the way the line shader does and fills the index triangles.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/itohio/gographer/pkg/vertex"
)

// Style describes how lines are drawn.
type Style struct {
	Width float32 // Line width in pixels
	Color color.Color
}

// Canvas is an RGBA image with a rasterizer sized to it.
type Canvas struct {
	Image *image.RGBA
	r     *vector.Rasterizer
}

// NewCanvas creates a width x height canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	return &Canvas{
		Image: img,
		r:     vector.NewRasterizer(width, height),
	}
}

// Clear fills the canvas with bg.
func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.Image, c.Image.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// Lines fills the triangles of g, extruded to the style's width, and
// composites them over the canvas. It returns the number of triangles drawn.
func (c *Canvas) Lines(g *vertex.Geometry, style Style) int {
	size := c.Image.Bounds().Size()
	c.r.Reset(size.X, size.Y)

	half := style.Width / 2
	drawn := 0
	var tri [3][2]float32
	for t := 0; t+2 < len(g.Indices); t += 3 {
		ok := true
		for k := range 3 {
			tri[k], ok = corner(g, int(g.Indices[t+k]), half)
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}

		if c.triangle(tri, size) {
			drawn++
		}
	}

	if drawn > 0 {
		c.r.Draw(c.Image, c.Image.Bounds(), image.NewUniform(style.Color), image.Point{})
	}
	return drawn
}

// Area fills the region between each path and the horizontal line at baseY.
// Paths should not cross baseY; vertex.SplitPaths splits them there. It
// returns the number of paths filled.
func (c *Canvas) Area(paths []vertex.Path, baseY float32, col color.Color) int {
	size := c.Image.Bounds().Size()
	c.r.Reset(size.X, size.Y)

	filled := 0
	for _, path := range paths {
		if len(path) < 2 || path[len(path)-1].X == path[0].X {
			continue
		}

		start := clamp([2]float32{path[0].X, baseY}, size)
		c.r.MoveTo(start[0], start[1])
		for _, pt := range path {
			p := clamp([2]float32{pt.X, pt.Y}, size)
			c.r.LineTo(p[0], p[1])
		}
		end := clamp([2]float32{path[len(path)-1].X, baseY}, size)
		c.r.LineTo(end[0], end[1])
		c.r.ClosePath()
		filled++
	}

	if filled > 0 {
		c.r.Draw(c.Image, c.Image.Bounds(), image.NewUniform(col), image.Point{})
	}
	return filled
}

// HLine draws a horizontal line across the canvas at y.
func (c *Canvas) HLine(y float32, width float32, col color.Color) {
	size := c.Image.Bounds().Size()
	c.r.Reset(size.X, size.Y)
	c.rect(0, y-width/2, float32(size.X), y+width/2, size)
	c.r.Draw(c.Image, c.Image.Bounds(), image.NewUniform(col), image.Point{})
}

// VLine draws a vertical line across the canvas at x.
func (c *Canvas) VLine(x float32, width float32, col color.Color) {
	size := c.Image.Bounds().Size()
	c.r.Reset(size.X, size.Y)
	c.rect(x-width/2, 0, x+width/2, float32(size.Y), size)
	c.r.Draw(c.Image, c.Image.Bounds(), image.NewUniform(col), image.Point{})
}

// WritePNG encodes the canvas into a PNG file.
func (c *Canvas) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, c.Image); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// corner returns the extruded position of vertex v. Corners 0 and 1 sit on
// the previous position, 2 and 3 on the position; even corners are offset to
// the right of the segment direction, odd ones to the left.
func corner(g *vertex.Geometry, v int, half float32) ([2]float32, bool) {
	x, y := g.Positions[2*v], g.Positions[2*v+1]
	px, py := g.PrevPositions[2*v], g.PrevPositions[2*v+1]

	dx, dy := x-px, y-py
	length := math32.Hypot(dx, dy)
	if length == 0 || math32.IsNaN(length) {
		return [2]float32{}, false
	}
	nx, ny := -dy/length*half, dx/length*half

	id := int(g.Corners[v])
	if id < 2 {
		x, y = px, py
	}
	if id%2 == 0 {
		return [2]float32{x - nx, y - ny}, true
	}
	return [2]float32{x + nx, y + ny}, true
}

// triangle adds a triangle with a fixed winding so overlapping and adjacent
// triangles accumulate instead of cancelling.
func (c *Canvas) triangle(tri [3][2]float32, size image.Point) bool {
	a, b, d := clamp(tri[0], size), clamp(tri[1], size), clamp(tri[2], size)
	cross := (b[0]-a[0])*(d[1]-a[1]) - (b[1]-a[1])*(d[0]-a[0])
	if cross == 0 {
		return false
	}
	if cross < 0 {
		b, d = d, b
	}
	c.r.MoveTo(a[0], a[1])
	c.r.LineTo(b[0], b[1])
	c.r.LineTo(d[0], d[1])
	c.r.ClosePath()
	return true
}

func (c *Canvas) rect(x0, y0, x1, y1 float32, size image.Point) {
	a := clamp([2]float32{x0, y0}, size)
	b := clamp([2]float32{x1, y1}, size)
	c.r.MoveTo(a[0], a[1])
	c.r.LineTo(b[0], a[1])
	c.r.LineTo(b[0], b[1])
	c.r.LineTo(a[0], b[1])
	c.r.ClosePath()
}

func clamp(p [2]float32, size image.Point) [2]float32 {
	return [2]float32{
		math32.Max(0, math32.Min(p[0], float32(size.X))),
		math32.Max(0, math32.Min(p[1], float32(size.Y))),
	}
}
