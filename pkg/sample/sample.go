package sample

import (
	"log"
	"time"

	"github.com/itohio/gographer/pkg/source"
)

// Point is a single data-space point. X is in seconds since the Unix epoch
// for streamed samples, Null marks a gap in the series.
type Point struct {
	X    float64
	Y    float64
	Null bool
}

// Converter is a function type that converts a RawSample channel to a Point channel.
type Converter func(in <-chan source.RawSample) <-chan Point

// NewConverter creates a converter function that transforms RawSample to Point.
func NewConverter(bufSize int) Converter {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan source.RawSample) <-chan Point {
		out := make(chan Point, bufSize)

		go func() {
			defer close(out)

			for raw := range in {
				select {
				case out <- convertSample(raw):
				case <-time.After(time.Second):
					log.Printf("Converter output channel full, dropping sample")
				}
			}
		}()

		return out
	}
}

// convertSample converts a RawSample to a Point.
func convertSample(raw source.RawSample) Point {
	p := Point{X: TimeToX(raw.Timestamp), Null: raw.Null}
	if !raw.Null {
		p.Y = raw.Value
	}
	return p
}

// TimeToX converts a timestamp to a data-space x value.
func TimeToX(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

// XToTime converts a data-space x value back to a timestamp.
func XToTime(x float64) time.Time {
	return time.UnixMicro(int64(x*1e6 + 0.5))
}
