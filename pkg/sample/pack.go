package sample

// extraSpaceFactor is the headroom allocated when a packed buffer grows.
const extraSpaceFactor = 1.25

// Packed is a selected-space series laid out for the decimator: Data holds
// interleaved x0,y0,x1,y1,... and NullMask one byte per point (1 = null).
// Only the first Length points are meaningful; the slices may be longer.
type Packed struct {
	Data     []float64
	NullMask []uint8
	Length   int
	MinX     float64
	MaxX     float64
}

// Pack writes points into dst, reusing its buffers whenever they are large
// enough and growing them by extraSpaceFactor otherwise.
//
// When nothing changed upstream and the previous pack covers the same MinX, a
// MaxX not beyond maxX and no more points than given, only the points from the
// previous last one onward are copied. Otherwise every point is rewritten.
func Pack(dst *Packed, points []Point, minX, maxX float64, changed bool) {
	n := len(points)
	hasSwap := dst.Data != nil && dst.NullMask != nil
	useSwap := !changed && hasSwap && dst.MinX == minX && dst.MaxX <= maxX && dst.Length <= n

	if len(dst.NullMask) < n || len(dst.Data) < 2*n {
		size := int(float64(n) * extraSpaceFactor)
		data := make([]float64, 2*size)
		nullMask := make([]uint8, size)
		if useSwap {
			copy(data, dst.Data)
			copy(nullMask, dst.NullMask)
		}
		dst.Data = data
		dst.NullMask = nullMask
	}

	start := 0
	if useSwap {
		start = max(dst.Length-1, 0)
	}

	for i := start; i < n; i++ {
		p := points[i]
		dst.Data[2*i] = p.X
		if p.Null {
			dst.Data[2*i+1] = 0
			dst.NullMask[i] = 1
		} else {
			dst.Data[2*i+1] = p.Y
			dst.NullMask[i] = 0
		}
	}

	dst.Length = n
	dst.MinX = minX
	dst.MaxX = maxX
}
