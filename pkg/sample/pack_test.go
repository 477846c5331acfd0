package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_Layout(t *testing.T) {
	points := []Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Null: true}, {X: 3, Y: 8}}

	var dst Packed
	Pack(&dst, points, 0, 3, false)

	require.Equal(t, 4, dst.Length)
	assert.Equal(t, 0.0, dst.MinX)
	assert.Equal(t, 3.0, dst.MaxX)
	assert.Equal(t, []float64{0, 1, 1, 2, 2, 0, 3, 8}, dst.Data[:2*dst.Length])
	assert.Equal(t, []uint8{0, 0, 1, 0}, dst.NullMask[:dst.Length])

	// Grows with headroom
	assert.Equal(t, 5, len(dst.NullMask))
	assert.Equal(t, 10, len(dst.Data))
}

func TestPack_DestinationReuse(t *testing.T) {
	dst := Packed{
		Data:     make([]float64, 20),
		NullMask: make([]uint8, 10),
	}
	data, mask := &dst.Data[0], &dst.NullMask[0]

	Pack(&dst, []Point{{X: 0, Y: 1}, {X: 1, Y: 2}}, 0, 1, true)

	// Should reuse dst buffers
	assert.Same(t, data, &dst.Data[0])
	assert.Same(t, mask, &dst.NullMask[0])
	assert.Equal(t, 2, dst.Length)

	// Smaller range after a change rewrites everything in place
	Pack(&dst, []Point{{X: 5, Null: true}}, 5, 5, true)
	assert.Same(t, data, &dst.Data[0])
	assert.Equal(t, []float64{5, 0}, dst.Data[:2])
	assert.Equal(t, uint8(1), dst.NullMask[0])
}

func TestPack_SwapAppend(t *testing.T) {
	var dst Packed
	Pack(&dst, []Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}, 0, 2, false)

	// Corrupt an early point: an unchanged swap must not rewrite it
	dst.Data[1] = 100

	Pack(&dst, []Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 5}}, 0, 3, false)

	require.Equal(t, 4, dst.Length)
	assert.Equal(t, 100.0, dst.Data[1])
	assert.Equal(t, []float64{2, 4, 3, 5}, dst.Data[4:8], "copy restarts at the previous last point")
}

func TestPack_SwapInvalidated(t *testing.T) {
	tests := []struct {
		name       string
		minX, maxX float64
		changed    bool
	}{
		{name: "changed", minX: 0, maxX: 3, changed: true},
		{name: "moved min", minX: 1, maxX: 3},
		{name: "shrunk max", minX: 0, maxX: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst Packed
			points := []Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}
			Pack(&dst, points, 0, 2, false)
			dst.Data[1] = 100

			Pack(&dst, points, tt.minX, tt.maxX, tt.changed)
			assert.Equal(t, 1.0, dst.Data[1])
		})
	}
}

func TestPack_EmptyInput(t *testing.T) {
	var dst Packed
	Pack(&dst, nil, 0, 1, false)
	assert.Equal(t, 0, dst.Length)
}
