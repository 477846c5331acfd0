package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the default serial baud rate.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the samples channel buffer.
	DefaultBufferSize = 100
)

// RawSample is a single timestamped value read from a source.
// Null marks a missing value, which renders as a gap.
type RawSample struct {
	Timestamp time.Time
	Value     float64
	Null      bool
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads samples line by line from a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial source with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		bufSize:   bufSize,
		samples:   make(chan RawSample, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading samples.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readSamples(port)

	return nil
}

// Close closes the connection and stops reading samples.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// disconnect releases the port after the reader stops on its own, for
// example on EOF or when the device is unplugged.
func (d *Serial) disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return
	}
	d.cancel()
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}
	d.connected = false
}

// Samples returns the channel for reading samples. It is closed once the
// reader stops.
func (d *Serial) Samples() <-chan RawSample {
	return d.samples
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readSamples reads lines from in until EOF or cancellation and closes the
// samples channel on exit.
func (d *Serial) readSamples(in io.Reader) {
	defer close(d.samples)
	defer d.disconnect()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readSamples: %v", r)
		}
	}()

	scanner := bufio.NewScanner(in)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
				log.Printf("Error reading from serial port: %v", err)
			}
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, err := parseLine(line)
		if err != nil {
			log.Printf("Failed to parse line '%s': %v", line, err)
			continue
		}

		select {
		case d.samples <- sample:
		case <-d.ctx.Done():
			return
		default:
			log.Printf("Samples channel full, dropping sample")
		}
	}
}

// parseLine parses a line into a RawSample.
// Format: unix_micros,value
// An empty value, "null" or any NaN spelling is a null sample.
// Example: 1234567890123,0.4125
func parseLine(line string) (RawSample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return RawSample{}, fmt.Errorf("invalid line format: expected 2 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	sample := RawSample{Timestamp: time.UnixMicro(timestampMicros)}

	value := strings.ToLower(strings.TrimSpace(parts[1]))
	if value == "" || value == "null" {
		sample.Null = true
		return sample, nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid value: %w", err)
	}
	if math.IsNaN(v) {
		sample.Null = true
		return sample, nil
	}
	if math.IsInf(v, 0) {
		return RawSample{}, fmt.Errorf("value out of range: %s", parts[1])
	}
	sample.Value = v

	return sample, nil
}
