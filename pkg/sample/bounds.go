package sample

import (
	"math"
	"slices"
)

// Bounds describes the extent of a series. HasX and HasY report whether any
// point (or any non-null point, for y) contributed; HasSpacing whether two
// consecutive points did.
type Bounds struct {
	MinX, MaxX     float64
	MinY, MaxY     float64
	ClosestSpacing float64

	HasX       bool
	HasY       bool
	HasSpacing bool
}

// CalculateBounds computes the bounds of points, which are sorted by x.
//
// With percentile below 100, MinY and MaxY are taken at the given percentile
// of the sorted non-null y values, so outliers fall outside; asymmetry (in
// percentage points, clamped to half the excluded share) moves the excluded
// share from the top to the bottom for positive values and vice versa.
// Closest spacing is only computed for the full range.
func CalculateBounds(points []Point, percentile, asymmetry float64) Bounds {
	if percentile != 100 && len(points) > 0 {
		return percentileBounds(points, percentile, asymmetry)
	}

	var b Bounds
	var prevX float64
	for i, p := range points {
		if !b.HasX || p.X < b.MinX {
			b.MinX = p.X
		}
		if !b.HasX || p.X > b.MaxX {
			b.MaxX = p.X
		}
		b.HasX = true

		if i > 0 {
			spacing := p.X - prevX
			if !b.HasSpacing || spacing < b.ClosestSpacing {
				b.ClosestSpacing = spacing
				b.HasSpacing = true
			}
		}
		prevX = p.X

		if p.Null {
			continue
		}
		if !b.HasY || p.Y < b.MinY {
			b.MinY = p.Y
		}
		if !b.HasY || p.Y > b.MaxY {
			b.MaxY = p.Y
		}
		b.HasY = true
	}

	return b
}

func percentileBounds(points []Point, percentile, asymmetry float64) Bounds {
	b := Bounds{
		MinX: points[0].X,
		MaxX: points[len(points)-1].X,
		HasX: true,
	}

	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if !p.Null {
			ys = append(ys, p.Y)
		}
	}
	if len(ys) == 0 {
		return b
	}
	slices.Sort(ys)

	excluded := (100 - percentile) / 2
	asym := math.Copysign(math.Min(math.Abs(asymmetry), excluded), asymmetry)
	bottom := excluded + asym
	top := excluded - asym

	last := float64(len(ys) - 1)
	start := int(math.Floor(last * bottom / 100))
	end := int(math.Floor(last * (100 - top) / 100))

	b.MinY = ys[start]
	b.MaxY = ys[end]
	b.HasY = true

	return b
}

// Pad grows the y range by fraction of its extent, split evenly above and
// below. A zero-extent range is widened by 5% of its value, or by 1 around
// zero, so the result always has a non-zero extent.
func (b Bounds) Pad(fraction float64) Bounds {
	if !b.HasY {
		return b
	}

	extent := b.MaxY - b.MinY
	mid := b.MinY + extent/2
	b.MinY = mid - (1+fraction)*extent/2
	b.MaxY = mid + (1+fraction)*extent/2

	if b.MinY == b.MaxY {
		switch {
		case b.MinY > 0:
			b.MinY *= 0.95
			b.MaxY *= 1.05
		case b.MinY < 0:
			b.MinY *= 1.05
			b.MaxY *= 0.95
		default:
			b.MinY--
			b.MaxY++
		}
	}

	return b
}
