package vertex

import "github.com/itohio/gographer/pkg/space"

type emitter struct {
	g *Geometry
	p int
}

func (e *emitter) add(x, y, prevX, prevY float32) {
	e.g.set(e.p, x, y, prevX, prevY)
	e.p++
}

// Extract writes the quad geometry for s into g. Column c is placed at
// x = c*xScale. g must hold exactly PointCount(s, dash) points; see
// Geometry.Resize. It returns the number of points written.
func Extract(xScale float64, s *space.RenderSeries, dash Dash, g *Geometry) int {
	e := emitter{g: g}
	walk(xScale, s, dash, &e)
	return e.p
}
