package space

import "math"

// SelectedToRender decimates a raw series in selected space into one column per
// render pixel and writes the result into out.
//
// data holds interleaved x, y pairs for the first length points and dataNull
// flags null points (nonzero = null). x must be non-decreasing. out must have
// at least Columns(p) entries in each buffer; no lengths are validated.
//
// Each column gets a representative y (interpolated between the points
// bracketing the column's x), and the min and max of the points swept past
// since the previous column. When the bracket differs from the previous
// interpolated column's, the left sample is used as is instead of an
// interpolated value, so the line trails the data by up to one sample. All
// values are flipped into top-down pixel space.
func SelectedToRender(length int, data []float64, dataNull []uint8, p ViewParams, out *RenderSeries) {
	minX := p.MinX()
	maxX := p.MaxX()
	minY := p.MinY()
	maxY := p.MaxY()
	renderWidth := p.RenderWidth()
	renderHeight := p.RenderHeight()
	logScale := ParseScale(p.Scale()) == Log

	toRender := func(y float64) float64 {
		if logScale {
			y = math.Log10(y)
		}
		return renderHeight * (1 - (y-minY)/(maxY-minY))
	}

	i := 0
	prevI := -1

	for pixelX := range Columns(p) {
		x := (float64(pixelX)/(renderWidth-1))*(maxX-minX) + minX

		// Step back onto the row before a null so its neighbor is bracketed again.
		if i > 0 && i <= length && dataNull[i-1] != 0 {
			i--
		}

		// Move i so that data[i].x < x <= data[i+1].x
		if i+2 < length && data[2*(i+1)] < x {
			i++
		}

		var minSeen, maxSeen float64
		seen := false
		for i+2 < length && data[2*(i+1)] < x {
			if dataNull[i] != 0 {
				i++
				continue
			}

			y := data[2*i+1]
			if !seen || y < minSeen {
				minSeen = y
			}
			if !seen || y > maxSeen {
				maxSeen = y
			}
			seen = true
			i++
		}

		var mask uint8
		if seen {
			out.MinY[pixelX] = toRender(minSeen)
			out.MaxY[pixelX] = toRender(maxSeen)
		} else {
			out.MinY[pixelX] = 0
			out.MaxY[pixelX] = 0
			mask |= NullMin | NullMax
		}

		// Pass discontinuities along
		if i+1 >= length || dataNull[i] != 0 || dataNull[i+1] != 0 {
			if i+1 >= length || dataNull[i] != 0 {
				mask |= NullY
				out.Y[pixelX] = 0
			} else {
				out.Y[pixelX] = toRender(data[2*i+1])
			}

			i++
			out.NullMask[pixelX] = mask
			continue
		}

		xBefore, yBefore := data[2*i], data[2*i+1]
		xAfter, yAfter := data[2*(i+1)], data[2*(i+1)+1]

		percent := (x - xBefore) / (xAfter - xBefore)
		y := percent*(yAfter-yBefore) + yBefore

		// First column on a new bracket: keep the left sample.
		if prevI != i {
			y = yBefore
		}

		out.Y[pixelX] = toRender(y)
		out.NullMask[pixelX] = mask

		prevI = i
	}
}
