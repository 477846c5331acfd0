package sample

import (
	"testing"
	"time"

	"github.com/itohio/gographer/pkg/source"
	"github.com/stretchr/testify/assert"
)

// TestConverter_GracefulShutdown tests that converter closes output channel
// when input channel is closed.
func TestConverter_GracefulShutdown(t *testing.T) {
	converter := NewConverter(10)
	input := make(chan source.RawSample, 10)
	output := converter(input)

	received := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		count := 0
		for range output {
			count++
		}
		received <- count
	}()

	now := time.Now()
	numSamples := 3
	for i := 0; i < numSamples; i++ {
		input <- source.RawSample{
			Timestamp: now.Add(time.Duration(i) * time.Second),
			Value:     float64(i),
		}
	}

	// Close input channel - this should cause converter to close output
	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Output channel did not close within timeout")
	}

	select {
	case count := <-received:
		assert.Equal(t, numSamples, count, "Should receive all samples before channel closes")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Did not receive sample count")
	}
}

// TestAveragingConverter_GracefulShutdown tests that averaging converter
// flushes its buffer and closes output channel when input channel is closed.
func TestAveragingConverter_GracefulShutdown(t *testing.T) {
	converter := NewAveragingConverter(3, 10)
	input := make(chan Point, 10)
	output := converter(input)

	received := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		count := 0
		for range output {
			count++
		}
		received <- count
	}()

	for i := 0; i < 5; i++ {
		input <- Point{X: float64(i), Y: float64(i) * 0.1}
	}

	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Output channel did not close within timeout")
	}

	// One full window plus the flushed remainder
	select {
	case count := <-received:
		assert.Equal(t, 2, count)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Did not receive sample count")
	}
}
