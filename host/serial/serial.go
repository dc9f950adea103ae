package serial

import (
	"io"
)

// Port is the byte stream the bridge runs its framing over. Two
// implementations exist: the tarm/serial device below and the
// simulator's in-memory pair.
type Port interface {
	io.ReadWriteCloser

	// Flush drains anything the implementation buffers below Write.
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate. The device samples at 19200; any other rate
	// mis-frames every byte.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration the device firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        19200,
		ReadTimeout: 100,
	}
}
