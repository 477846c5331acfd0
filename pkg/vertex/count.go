package vertex

import "github.com/itohio/gographer/pkg/space"

type counter struct {
	n int
}

func (c *counter) add(_, _, _, _ float32) {
	c.n++
}

// PointCount returns the number of logical points Extract will emit for s
// with the given dash pattern. Each point takes 4 vertices and 6 indices.
func PointCount(s *space.RenderSeries, dash Dash) int {
	var c counter
	walk(1, s, dash, &c)
	return c.n
}
