package main

import (
	"fmt"

	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/source"
)

// Buffer size of every converter stage
const stageBufferSize = 500

// sampleChain tracks the components of the sample chain for graceful shutdown.
type sampleChain struct {
	device        source.Device
	points        <-chan sample.Point
	bufferRoutine chan struct{} // Closed when the buffer goroutine exits
}

// newDevice creates the mocked or serial source described by cfg.
func newDevice(cfg *config.Config, useMock bool) source.Device {
	if useMock {
		fmt.Println("Using mocked source")
		return source.NewMock(&cfg.Mock)
	}
	return source.New(cfg.Source.Port, cfg.Source.BaudRate, cfg.Source.BufferSize)
}

// startSampleChain wires a connected device into buffer:
// raw samples -> points -> optional averaging -> buffer.
func startSampleChain(device source.Device, cfg *config.Config, buffer *graph.Buffer) *sampleChain {
	points := sample.NewConverter(stageBufferSize)(device.Samples())
	if cfg.Source.AverageSamples > 0 {
		points = sample.NewAveragingConverter(cfg.Source.AverageSamples, stageBufferSize)(points)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		buffer.ProcessSamples(points)
	}()

	return &sampleChain{
		device:        device,
		points:        points,
		bufferRoutine: done,
	}
}

// closeSampleChain gracefully closes the sample chain.
// Waits for the buffer goroutine to drain the converters.
func closeSampleChain(chain *sampleChain) {
	if chain == nil {
		return
	}

	// Close device - this will close the raw samples channel
	if chain.device != nil {
		chain.device.Close()
	}

	// The buffer goroutine exits once every converter has drained
	if chain.bufferRoutine != nil {
		<-chain.bufferRoutine
	}
}
