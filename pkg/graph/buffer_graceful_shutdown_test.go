package graph

import (
	"sync"
	"testing"
	"time"

	"github.com/itohio/gographer/pkg/sample"
	"github.com/stretchr/testify/assert"
)

// TestBuffer_GracefulShutdown_NoCallbacksAfterClose tests that the buffer stops
// sending callbacks after the input channel is closed.
func TestBuffer_GracefulShutdown_NoCallbacksAfterClose(t *testing.T) {
	b := NewBuffer(10 * time.Second)

	var mu sync.Mutex
	callbackCount := 0
	b.OnUpdate(func(points []sample.Point, gaps []Gap) {
		mu.Lock()
		callbackCount++
		mu.Unlock()
	})

	input := make(chan sample.Point, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.ProcessSamples(input)
	}()

	for i := 0; i < 3; i++ {
		input <- value(float64(i), float64(i)*0.1)
	}
	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessSamples did not finish within timeout")
	}

	mu.Lock()
	initialCount := callbackCount
	mu.Unlock()
	assert.Equal(t, 3, initialCount)

	// Shutdown flag is set, points are still buffered but nobody is notified
	b.processPoint(value(10, 1))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, initialCount, callbackCount, "No callbacks should be sent after channel closes")
	assert.Len(t, b.Points(), 4)
}

// TestBuffer_ResetShutdown tests that ResetShutdown allows callbacks again.
func TestBuffer_ResetShutdown(t *testing.T) {
	b := NewBuffer(10 * time.Second)

	var mu sync.Mutex
	callbackCount := 0
	b.OnUpdate(func(points []sample.Point, gaps []Gap) {
		mu.Lock()
		callbackCount++
		mu.Unlock()
	})

	run := func(points ...sample.Point) {
		input := make(chan sample.Point, len(points))
		for _, p := range points {
			input <- p
		}
		close(input)
		b.ProcessSamples(input)
	}

	run(value(0, 0.1), value(0.1, 0.2))

	mu.Lock()
	count1 := callbackCount
	mu.Unlock()

	b.ResetShutdown()
	run(value(0.2, 0.3), value(0.3, 0.4))

	mu.Lock()
	count2 := callbackCount
	mu.Unlock()

	assert.Equal(t, 2, count1)
	assert.Greater(t, count2, count1, "Callbacks should resume after ResetShutdown")
}
