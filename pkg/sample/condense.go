package sample

import "math"

const (
	// bucketsPerColumn is the number of x buckets per decimated column.
	bucketsPerColumn = 2
	// condenseThreshold is the average points per bucket below which the
	// series is left as is.
	condenseThreshold = 4
)

// Condense reduces a dense selected-space series to at most the minimum and
// maximum point of each x bucket over [minX, maxX], two buckets per column.
// The first and last points are always kept and a run of nulls collapses to
// its first null, so gaps survive. The result is written into dst and is
// sorted by x.
//
// When there are fewer than condenseThreshold points per bucket, points is
// returned unchanged and the second result is false.
func Condense(dst, points []Point, minX, maxX, columns float64) ([]Point, bool) {
	buckets := int(columns * bucketsPerColumn)
	if buckets < 1 || !(maxX > minX) || len(points) < condenseThreshold*buckets {
		return points, false
	}
	bucketSize := (maxX - minX) / float64(buckets)

	dst = dst[:0]
	last := -1
	emit := func(i int) {
		if i != last {
			dst = append(dst, points[i])
			last = i
		}
	}

	lo, hi := -1, -1
	flush := func() {
		if lo < 0 {
			return
		}
		if lo < hi {
			emit(lo)
			emit(hi)
		} else {
			emit(hi)
			emit(lo)
		}
		lo, hi = -1, -1
	}

	emit(0)
	bucket := 0
	for i, p := range points {
		if p.Null {
			flush()
			if !dst[len(dst)-1].Null {
				emit(i)
			}
			continue
		}

		b := int(math.Floor((p.X - minX) / bucketSize))
		if b != bucket {
			flush()
			bucket = b
		}
		if lo < 0 || p.Y < points[lo].Y {
			lo = i
		}
		if hi < 0 || p.Y > points[hi].Y {
			hi = i
		}
	}
	flush()
	emit(len(points) - 1)

	return dst, true
}
