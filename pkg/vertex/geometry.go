package vertex

import "github.com/chewxy/math32"

const (
	// VerticesPerPoint is the number of quad corners emitted per logical point.
	VerticesPerPoint = 4
	// IndicesPerPoint is the number of triangle indices emitted per logical point.
	IndicesPerPoint = 6
)

// Geometry holds the buffers consumed by the line shader.
//
// All four vertices of a point share the same position and previous position;
// Corners tells them apart so the shader can extrude the quad.
type Geometry struct {
	Positions     []float32 // x, y per vertex (8 per point)
	PrevPositions []float32 // previous x, y per vertex (8 per point)
	Corners       []float32 // corner id 0..3 per vertex (4 per point)
	Indices       []uint32  // two triangles per point (6 per point)
}

// NewGeometry allocates buffers for the given number of points.
func NewGeometry(points int) *Geometry {
	g := &Geometry{}
	g.Resize(points)
	return g
}

// Resize sizes the buffers for exactly points points, reusing capacity when possible.
func (g *Geometry) Resize(points int) {
	g.Positions = grow(g.Positions, points*2*VerticesPerPoint)
	g.PrevPositions = grow(g.PrevPositions, points*2*VerticesPerPoint)
	g.Corners = grow(g.Corners, points*VerticesPerPoint)
	g.Indices = grow(g.Indices, points*IndicesPerPoint)
}

// Points returns the number of points the buffers hold.
func (g *Geometry) Points() int {
	return len(g.Corners) / VerticesPerPoint
}

// Vertices returns the number of vertices the buffers hold.
func (g *Geometry) Vertices() int {
	return len(g.Corners)
}

// Position returns the position of point p.
func (g *Geometry) Position(p int) (x, y float32) {
	return g.Positions[p*8], g.Positions[p*8+1]
}

// Prev returns the previous position of point p.
func (g *Geometry) Prev(p int) (x, y float32) {
	return g.PrevPositions[p*8], g.PrevPositions[p*8+1]
}

// SegmentLength returns the length of the segment ending at point p.
// Cap stubs after a gap have length 1, vertical range bars their span.
func (g *Geometry) SegmentLength(p int) float32 {
	x, y := g.Position(p)
	px, py := g.Prev(p)
	return math32.Hypot(x-px, y-py)
}

// set writes point p.
func (g *Geometry) set(p int, x, y, prevX, prevY float32) {
	for j := range VerticesPerPoint {
		g.Positions[p*8+2*j] = x
		g.Positions[p*8+2*j+1] = y
		g.PrevPositions[p*8+2*j] = prevX
		g.PrevPositions[p*8+2*j+1] = prevY
		g.Corners[p*4+j] = float32(j)
	}

	base := uint32(p * 4)
	g.Indices[p*6] = base
	g.Indices[p*6+1] = base + 1
	g.Indices[p*6+2] = base + 3

	g.Indices[p*6+3] = base
	g.Indices[p*6+4] = base + 2
	g.Indices[p*6+5] = base + 3
}

func grow[T float32 | uint32](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
