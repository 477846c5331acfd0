package source

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/gographer/pkg/config"
)

// Mock simulates a sample source for testing and development: a noisy sine
// wave interrupted by periodic gaps of null samples.
type Mock struct {
	cfg *config.MockConfig

	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	startTime time.Time
}

// NewMock creates a new mocked source instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			Offset:     2.0,
			Amplitude:  1.0,
			Period:     4 * time.Second,
			NoiseLevel: 0.05,
			GapEvery:   7 * time.Second,
			GapLength:  500 * time.Millisecond,
			SampleRate: 10 * time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		samples:   make(chan RawSample, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect starts generating samples.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()

	go m.generateSamples()

	return nil
}

// Close stops the mocked source and closes the samples channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan RawSample {
	return m.samples
}

// IsConnected returns whether the source is currently running.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateSamples emits samples until the context is cancelled.
func (m *Mock) generateSamples() {
	defer close(m.samples)

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			sample := m.generateSample(now.Sub(m.startTime))
			sample.Timestamp = now
			select {
			case m.samples <- sample:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateSample computes the signal at the given time since start.
func (m *Mock) generateSample(elapsed time.Duration) RawSample {
	if m.inGap(elapsed) {
		return RawSample{Null: true}
	}

	phase := 2 * math.Pi * elapsed.Seconds() / m.cfg.Period.Seconds()
	value := m.cfg.Offset + m.cfg.Amplitude*math.Sin(phase)

	// Deterministic noise from two incommensurate tones
	ns := float64(elapsed.Nanoseconds())
	value += (math.Sin(ns*0.001) + math.Cos(ns*0.0013)) * m.cfg.NoiseLevel * 0.5

	return RawSample{Value: value}
}

// inGap reports whether elapsed falls into one of the periodic gaps.
// Gaps start at the end of each GapEvery interval.
func (m *Mock) inGap(elapsed time.Duration) bool {
	if m.cfg.GapEvery <= 0 || m.cfg.GapLength <= 0 {
		return false
	}
	cycle := m.cfg.GapEvery + m.cfg.GapLength
	return elapsed%cycle >= m.cfg.GapEvery
}
