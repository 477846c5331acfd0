package sample

import "sort"

// Select converts data-space points, sorted by x, into the selected space
// [minX, maxX]. The result is written into dst (reused if it has enough
// capacity) and returned.
//
// Points inside the range are kept as is. When the data does not land on a
// boundary, a point is added there: interpolated from its neighbours, or null
// when the data does not extend past that boundary. A range that misses the
// data entirely yields [(minX, null), (maxX, null)].
func Select(dst []Point, points []Point, minX, maxX float64) []Point {
	dst = dst[:0]
	n := len(points)

	if n == 0 || minX > points[n-1].X || maxX < points[0].X {
		return append(dst, Point{X: minX, Null: true}, Point{X: maxX, Null: true})
	}

	// before is the last index with x < minX, after the first with x > maxX
	before := sort.Search(n, func(i int) bool { return points[i].X >= minX }) - 1
	after := sort.Search(n, func(i int) bool { return points[i].X > maxX })

	if before+1 >= after {
		return append(dst,
			interpolate(points, before, after, minX),
			interpolate(points, before, after, maxX),
		)
	}

	if points[before+1].X > minX {
		if before < 0 {
			dst = append(dst, Point{X: minX, Null: true})
		} else {
			dst = append(dst, interpolate(points, before, before+1, minX))
		}
	}

	dst = append(dst, points[before+1:after]...)

	if points[after-1].X < maxX {
		if after >= n {
			dst = append(dst, Point{X: maxX, Null: true})
		} else {
			dst = append(dst, interpolate(points, after-1, after, maxX))
		}
	}

	if len(dst) == 1 {
		p := dst[0]
		dst = append(dst[:0],
			interpolate(points, before, before+1, minX),
			p,
			interpolate(points, after-1, after, maxX),
		)
	}

	return dst
}

// interpolate returns the point at x = boundary on the segment between
// points[i] and points[j]. The result is null when either index is outside
// the data, either end is null, or the boundary lies outside the segment.
func interpolate(points []Point, i, j int, boundary float64) Point {
	out := Point{X: boundary, Null: true}
	if i < 0 || j < 0 || i >= len(points) || j >= len(points) {
		return out
	}

	a, b := points[i], points[j]
	if i == j {
		out.Y, out.Null = a.Y, a.Null
		return out
	}
	if boundary == a.X && !a.Null {
		out.Y, out.Null = a.Y, false
		return out
	}
	if boundary == b.X && !b.Null {
		out.Y, out.Null = b.Y, false
		return out
	}
	if a.Null || b.Null {
		return out
	}

	percent := (boundary - a.X) / (b.X - a.X)
	if percent < 0 || percent > 1 {
		return out
	}

	out.Y, out.Null = percent*(b.Y-a.Y)+a.Y, false
	return out
}
