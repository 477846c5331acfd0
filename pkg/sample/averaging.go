package sample

import (
	"log"
	"time"
)

// NewAveragingConverter creates a stage that averages each run of windowSize
// consecutive non-null Points into one Point. This reduces noise and point
// density before the series is buffered. A null Point flushes the pending run
// and is passed through, so gaps survive averaging.
func NewAveragingConverter(windowSize int, bufSize int) func(in <-chan Point) <-chan Point {
	if windowSize <= 0 {
		windowSize = 1 // No averaging if invalid
	}
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan Point) <-chan Point {
		out := make(chan Point, bufSize)

		go func() {
			defer close(out)

			buffer := make([]Point, 0, windowSize)
			send := func(p Point) {
				select {
				case out <- p:
				case <-time.After(time.Second):
					log.Printf("Averaging converter output channel full")
				}
			}

			for p := range in {
				if p.Null {
					if len(buffer) > 0 {
						send(averagePoints(buffer))
						buffer = buffer[:0]
					}
					send(p)
					continue
				}

				buffer = append(buffer, p)
				if len(buffer) == windowSize {
					send(averagePoints(buffer))
					buffer = buffer[:0]
				}
			}

			// Input closed, output the remainder
			if len(buffer) > 0 {
				send(averagePoints(buffer))
			}
		}()

		return out
	}
}

// averagePoints averages a slice of non-null Points.
// Uses the most recent point's x.
func averagePoints(points []Point) Point {
	if len(points) == 0 {
		return Point{Null: true}
	}

	var sum float64
	for _, p := range points {
		sum += p.Y
	}

	return Point{
		X: points[len(points)-1].X,
		Y: sum / float64(len(points)),
	}
}
