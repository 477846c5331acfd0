package space

// Null mask bits of a decimated column.
const (
	NullY   uint8 = 0b001 // Representative y absent
	NullMin uint8 = 0b010 // Column minimum absent
	NullMax uint8 = 0b100 // Column maximum absent
)

// RenderSeries is a decimated series in render space, one entry per pixel column.
// All four slices have the same length.
type RenderSeries struct {
	NullMask []uint8
	Y        []float64
	MinY     []float64
	MaxY     []float64
}

// NewRenderSeries allocates a zeroed series with n columns.
func NewRenderSeries(n int) *RenderSeries {
	return &RenderSeries{
		NullMask: make([]uint8, n),
		Y:        make([]float64, n),
		MinY:     make([]float64, n),
		MaxY:     make([]float64, n),
	}
}

// Resize sets the series to n zeroed columns, reusing the existing buffers
// when their capacity is sufficient.
func (s *RenderSeries) Resize(n int) {
	s.NullMask = resize(s.NullMask, n)
	s.Y = resize(s.Y, n)
	s.MinY = resize(s.MinY, n)
	s.MaxY = resize(s.MaxY, n)
}

// Len returns the number of columns.
func (s *RenderSeries) Len() int {
	return len(s.Y)
}

// Value returns the representative y of column i.
func (s *RenderSeries) Value(i int) (float64, bool) {
	if s.NullMask[i]&NullY != 0 {
		return 0, false
	}
	return s.Y[i], true
}

// Min returns the minimum aggregated into column i.
func (s *RenderSeries) Min(i int) (float64, bool) {
	if s.NullMask[i]&NullMin != 0 {
		return 0, false
	}
	return s.MinY[i], true
}

// Max returns the maximum aggregated into column i.
func (s *RenderSeries) Max(i int) (float64, bool) {
	if s.NullMask[i]&NullMax != 0 {
		return 0, false
	}
	return s.MaxY[i], true
}

// HasRange reports whether column i carries a distinct min/max pair.
func (s *RenderSeries) HasRange(i int) bool {
	return s.MinY[i] != s.MaxY[i]
}

func resize[T uint8 | float64](buf []T, n int) []T {
	if cap(buf) >= n {
		buf = buf[:n]
		clear(buf)
		return buf
	}
	return make([]T, n)
}
