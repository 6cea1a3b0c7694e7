package fc2231

// Device defines the interface for FC2231 sensor boards (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Readings() <-chan Reading
	Send(cmd string) error
	SetForceRange(newtons float64) error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
