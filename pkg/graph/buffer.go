package graph

import (
	"sort"
	"sync"
	"time"

	"github.com/itohio/gographer/pkg/sample"
)

var _ Series = (*Buffer)(nil)

// Gap is a run of consecutive null points.
type Gap struct {
	StartX float64 // X of the first null point
	EndX   float64 // X of the last null point (updated while the gap continues)
	Count  int     // Number of null points in the run
}

// Series collects streamed points into a sliding window.
type Series interface {
	ProcessSamples(input <-chan sample.Point)
	Points() []sample.Point                             // Current window, ordered by x
	Gaps() []Gap                                        // Gaps within the window
	OnUpdate(func(points []sample.Point, gaps []Gap)) // Register callback for updates
}

// Buffer implements Series. Points are kept in a FIFO ordered by x; removal
// is based on x (the time window), not on the number of points.
type Buffer struct {
	points []sample.Point
	gaps   []Gap

	// Thread safety
	mu sync.RWMutex

	callbacks []func(points []sample.Point, gaps []Gap)
	cbMu      sync.RWMutex

	window float64 // Window length in x units (seconds)

	// Shutdown control
	shutdown bool // Set to true when input channel closes, prevents further callbacks
}

// NewBuffer creates a Buffer keeping points within window of the latest one.
func NewBuffer(window time.Duration) *Buffer {
	return &Buffer{
		points:    make([]sample.Point, 0),
		gaps:      make([]Gap, 0),
		callbacks: make([]func(points []sample.Point, gaps []Gap), 0),
		window:    window.Seconds(),
	}
}

// SetWindow changes the window length. Points already outside the new window
// are dropped with the next point.
func (b *Buffer) SetWindow(window time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.window = window.Seconds()
}

// Window returns the window length.
func (b *Buffer) Window() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return time.Duration(b.window * float64(time.Second))
}

// ProcessSamples processes points from the input channel until it closes.
// When the input channel closes, it sets shutdown flag to prevent further callbacks.
func (b *Buffer) ProcessSamples(input <-chan sample.Point) {
	for p := range input {
		b.processPoint(p)
	}
	// Channel closed - mark as shutdown to prevent further callbacks
	b.mu.Lock()
	b.shutdown = true
	b.mu.Unlock()
}

// processPoint appends a point, trims the window and tracks gaps.
func (b *Buffer) processPoint(p sample.Point) {
	b.mu.Lock()

	// Out of order points would break the sorted invariant
	if n := len(b.points); n > 0 && p.X < b.points[n-1].X {
		b.mu.Unlock()
		return
	}

	wasNull := len(b.points) > 0 && b.points[len(b.points)-1].Null
	b.points = append(b.points, p)

	if p.Null {
		if wasNull && len(b.gaps) > 0 {
			g := &b.gaps[len(b.gaps)-1]
			g.EndX = p.X
			g.Count++
		} else {
			b.gaps = append(b.gaps, Gap{StartX: p.X, EndX: p.X, Count: 1})
		}
	}

	b.trim(p.X - b.window)

	shouldNotify := !b.shutdown
	b.mu.Unlock()

	if shouldNotify {
		b.notifyCallbacks()
	}
}

// trim drops points at or before cutoff and gaps that ended before it.
func (b *Buffer) trim(cutoff float64) {
	cut := sort.Search(len(b.points), func(i int) bool { return b.points[i].X > cutoff })
	if cut == 0 {
		return
	}
	b.points = b.points[cut:]

	valid := b.gaps[:0]
	for _, g := range b.gaps {
		if g.EndX <= cutoff {
			continue
		}
		if g.StartX <= cutoff {
			// Partially trimmed: recount what is left
			g.Count = 0
			for _, p := range b.points {
				if !p.Null {
					break
				}
				g.Count++
			}
			g.StartX = b.points[0].X
		}
		valid = append(valid, g)
	}
	b.gaps = valid
}

// Points returns a copy of the current window.
func (b *Buffer) Points() []sample.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]sample.Point, len(b.points))
	copy(result, b.points)
	return result
}

// Gaps returns a copy of the gaps within the window.
func (b *Buffer) Gaps() []Gap {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Gap, len(b.gaps))
	copy(result, b.gaps)
	return result
}

// Reset drops all points and gaps.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points = b.points[:0]
	b.gaps = b.gaps[:0]
}

// OnUpdate registers a callback function that will be called when points are updated.
// The callback receives copies of the current points and gaps.
// The callback should copy data quickly and return as fast as possible.
func (b *Buffer) OnUpdate(callback func(points []sample.Point, gaps []Gap)) {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.callbacks = append(b.callbacks, callback)
}

// ResetShutdown resets the shutdown flag, allowing callbacks to be sent again.
// This should be called before starting a new source chain.
func (b *Buffer) ResetShutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = false
}

// notifyCallbacks invokes all registered callbacks with current data.
// Makes copies of data while holding read lock, then calls callbacks without lock.
func (b *Buffer) notifyCallbacks() {
	b.mu.RLock()
	pointsCopy := make([]sample.Point, len(b.points))
	copy(pointsCopy, b.points)
	gapsCopy := make([]Gap, len(b.gaps))
	copy(gapsCopy, b.gaps)
	b.mu.RUnlock()

	b.cbMu.RLock()
	callbacks := make([]func(points []sample.Point, gaps []Gap), len(b.callbacks))
	copy(callbacks, b.callbacks)
	b.cbMu.RUnlock()

	// Invoke callbacks without holding any locks
	for _, cb := range callbacks {
		if cb != nil {
			cb(pointsCopy, gapsCopy)
		}
	}
}
