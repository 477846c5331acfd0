package vertex

import "github.com/itohio/gographer/pkg/space"

// PathPoint is a point of a contiguous path in render space.
type PathPoint struct {
	X, Y float32
}

// Path is a run of points without gaps.
type Path []PathPoint

// Paths splits a decimated series into contiguous paths, emitting the same
// point sequence as Extract (range columns expand to representative, min,
// max, representative).
func Paths(xScale float64, s *space.RenderSeries) []Path {
	return paths(xScale, s, false, 0)
}

// SplitPaths is like Paths but also starts a new path whenever the line
// crosses splitAtY (render space). The crossing point begins the new path.
func SplitPaths(xScale float64, s *space.RenderSeries, splitAtY float64) []Path {
	return paths(xScale, s, true, splitAtY)
}

func paths(xScale float64, s *space.RenderSeries, split bool, splitAtY float64) []Path {
	var result []Path
	var current Path
	scale := float32(xScale)

	flush := func() {
		if len(current) > 0 {
			result = append(result, current)
		}
		current = nil
	}

	for i := range s.Len() {
		mask := s.NullMask[i]
		if mask&space.NullY != 0 {
			flush()
			continue
		}

		x := float32(i) * scale
		y := s.Y[i]
		current = append(current, PathPoint{X: x, Y: float32(y)})

		if s.MinY[i] != s.MaxY[i] {
			if mask&space.NullMin == 0 {
				current = append(current, PathPoint{X: x, Y: float32(s.MinY[i])})
			}
			if mask&space.NullMax == 0 {
				current = append(current, PathPoint{X: x, Y: float32(s.MaxY[i])})
			}
			current = append(current, PathPoint{X: x, Y: float32(y)})
		}

		if split && i > 0 && s.NullMask[i-1]&space.NullY == 0 {
			prevY := s.Y[i-1]
			if (prevY < splitAtY && y >= splitAtY) || (prevY > splitAtY && y <= splitAtY) {
				flush()
				current = Path{{X: x, Y: float32(y)}}
			}
		}
	}
	flush()

	return result
}

// PathPointCount returns the number of points ExtractPaths emits. The dash
// phase restarts at the beginning of every path.
func PathPointCount(paths []Path, dash Dash) int {
	n := 0
	for _, path := range paths {
		if !dash.Enabled() {
			n += len(path)
			continue
		}
		for i := range path {
			if !dash.off(i) {
				n++
			}
		}
	}
	return n
}

// ExtractPaths writes quad geometry for paths into g, which must hold
// PathPointCount(paths, dash) points. It returns the number of points written.
func ExtractPaths(paths []Path, dash Dash, g *Geometry) int {
	p := 0
	for _, path := range paths {
		for i, pt := range path {
			if dash.off(i) {
				continue
			}

			prev := PathPoint{X: pt.X - 1, Y: pt.Y}
			if i > 0 {
				prev = path[i-1]
			}

			g.set(p, pt.X, pt.Y, prev.X, prev.Y)
			p++
		}
	}
	return p
}
