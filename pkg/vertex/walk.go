package vertex

import "github.com/itohio/gographer/pkg/space"

// sink receives every logical point the walk accepts, in emission order.
type sink interface {
	add(x, y, prevX, prevY float32)
}

// walk traverses a decimated series applying gap and dash logic.
// PointCount and Extract both go through here so their results always agree.
//
// The path position restarts at the first column after a gap and advances for
// every emitted point and for every column skipped by the dash pattern.
func walk(xScale float64, s *space.RenderSeries, dash Dash, out sink) {
	discontinuous := true
	path := 0
	scale := float32(xScale)

	for i := range s.Len() {
		mask := s.NullMask[i]
		if mask&space.NullY != 0 {
			discontinuous = true
			continue
		}

		if discontinuous {
			path = 0
		}

		if dash.off(path) {
			path++
			continue
		}

		x := float32(i) * scale
		y := float32(s.Y[i])

		var prevX, prevY float32
		if discontinuous {
			// Unit stub behind the point so the line gets a clean cap.
			prevX = x - 1
			prevY = y
		} else {
			prevX = float32(i-1) * scale
			prevY = float32(s.Y[i-1])
		}

		out.add(x, y, prevX, prevY)
		path++

		if s.MinY[i] != s.MaxY[i] {
			lastY := y

			if mask&space.NullMin == 0 {
				minY := float32(s.MinY[i])
				out.add(x, minY, x, lastY)
				lastY = minY
				path++
			}

			if mask&(space.NullMin|space.NullMax) == 0 {
				maxY := float32(s.MaxY[i])
				out.add(x, maxY, x, lastY)
				lastY = maxY
				path++
			}

			out.add(x, y, x, lastY)
			path++
		}

		discontinuous = false
	}
}
