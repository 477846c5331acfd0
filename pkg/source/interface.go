package source

// Device defines the interface for sample sources (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan RawSample
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
