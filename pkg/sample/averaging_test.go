package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(out <-chan Point) []Point {
	var points []Point
	for p := range out {
		points = append(points, p)
	}
	return points
}

func TestNewAveragingConverter_BasicAveraging(t *testing.T) {
	converter := NewAveragingConverter(3, 10)

	in := make(chan Point, 10)
	out := converter(in)

	for i := 0; i < 6; i++ {
		in <- Point{X: float64(i), Y: float64(i * 10)}
	}
	close(in)

	points := collect(out)
	require.Len(t, points, 2)
	assert.Equal(t, Point{X: 2, Y: 10}, points[0])
	assert.Equal(t, Point{X: 5, Y: 40}, points[1])
}

func TestNewAveragingConverter_Remainder(t *testing.T) {
	converter := NewAveragingConverter(4, 10)

	in := make(chan Point, 10)
	out := converter(in)

	for i := 0; i < 6; i++ {
		in <- Point{X: float64(i), Y: 2}
	}
	close(in)

	points := collect(out)
	require.Len(t, points, 2)
	assert.Equal(t, Point{X: 3, Y: 2}, points[0])
	assert.Equal(t, Point{X: 5, Y: 2}, points[1])
}

func TestNewAveragingConverter_NullFlushes(t *testing.T) {
	converter := NewAveragingConverter(3, 10)

	in := make(chan Point, 10)
	out := converter(in)

	in <- Point{X: 0, Y: 1}
	in <- Point{X: 1, Y: 3}
	in <- Point{X: 2, Null: true}
	in <- Point{X: 3, Null: true}
	in <- Point{X: 4, Y: 5}
	close(in)

	points := collect(out)
	require.Len(t, points, 4)
	assert.Equal(t, Point{X: 1, Y: 2}, points[0])
	assert.Equal(t, Point{X: 2, Null: true}, points[1])
	assert.Equal(t, Point{X: 3, Null: true}, points[2])
	assert.Equal(t, Point{X: 4, Y: 5}, points[3])
}

func TestNewAveragingConverter_EmptyChannel(t *testing.T) {
	converter := NewAveragingConverter(5, 10)

	in := make(chan Point)
	out := converter(in)

	close(in)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed")
}

func TestNewAveragingConverter_InvalidWindowSize(t *testing.T) {
	converter := NewAveragingConverter(0, 0)

	in := make(chan Point, 3)
	out := converter(in)

	in <- Point{X: 0, Y: 1}
	in <- Point{X: 1, Y: 2}
	close(in)

	// Window of one passes points through
	points := collect(out)
	assert.Equal(t, []Point{{X: 0, Y: 1}, {X: 1, Y: 2}}, points)
}

func TestAveragePoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Point
	}{
		{name: "empty", points: nil, want: Point{Null: true}},
		{name: "single", points: []Point{{X: 1, Y: 7}}, want: Point{X: 1, Y: 7}},
		{name: "mean with last x", points: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 6}}, want: Point{X: 3, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, averagePoints(tt.points))
		})
	}
}
