package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func null(x float64) Point { return Point{X: x, Null: true} }

func TestSelect(t *testing.T) {
	ramp := []Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}, {X: 6, Y: 6}}

	tests := []struct {
		name       string
		points     []Point
		minX, maxX float64
		want       []Point
	}{
		{
			name: "empty",
			minX: 0, maxX: 1,
			want: []Point{null(0), null(1)},
		},
		{
			name:   "range after data",
			points: ramp,
			minX:   7, maxX: 9,
			want: []Point{null(7), null(9)},
		},
		{
			name:   "range before data",
			points: ramp,
			minX:   -3, maxX: -1,
			want: []Point{null(-3), null(-1)},
		},
		{
			name:   "exact bounds",
			points: ramp,
			minX:   0, maxX: 6,
			want: ramp,
		},
		{
			name:   "interpolated bounds",
			points: ramp,
			minX:   1, maxX: 5,
			want:   []Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 4, Y: 4}, {X: 5, Y: 5}},
		},
		{
			name:   "bounds beyond data",
			points: ramp[:2],
			minX:   -1, maxX: 3,
			want:   []Point{null(-1), {X: 0, Y: 0}, {X: 2, Y: 2}, null(3)},
		},
		{
			name:   "range between two points",
			points: []Point{{X: 0, Y: 0}, {X: 4, Y: 4}},
			minX:   1, maxX: 3,
			want:   []Point{{X: 1, Y: 1}, {X: 3, Y: 3}},
		},
		{
			name:   "null neighbour",
			points: []Point{null(0), {X: 2, Y: 2}},
			minX:   1, maxX: 2,
			want:   []Point{null(1), {X: 2, Y: 2}},
		},
		{
			name:   "nulls inside range kept",
			points: []Point{{X: 0, Y: 0}, null(1), {X: 2, Y: 2}},
			minX:   0, maxX: 2,
			want:   []Point{{X: 0, Y: 0}, null(1), {X: 2, Y: 2}},
		},
		{
			name:   "single point range",
			points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
			minX:   1, maxX: 1,
			want:   []Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(nil, tt.points, tt.minX, tt.maxX)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_DestinationReuse(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	dst := make([]Point, 0, 10)

	got := Select(dst, points, 0.5, 1.5)
	assert.Equal(t, cap(dst), cap(got))
	assert.Equal(t, []Point{{X: 0.5, Y: 0.5}, {X: 1, Y: 1}, {X: 1.5, Y: 1.5}}, got)

	// Stale contents are overwritten
	got = Select(got, points, 0, 2)
	assert.Equal(t, points, got)
}
