package fc2231

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the baud rate of the FC2231 Arduino sketch.
	DefaultBaudRate = 9600
	// DefaultBufferSize is the default size for the readings channel buffer.
	DefaultBufferSize = 100

	// responseTag prefixes free-form diagnostic lines emitted in response to
	// commands. They are not data lines and are skipped by the read loop.
	responseTag = "FC2231,"
)

// Device commands understood by the sketch. Commands are newline-terminated,
// case-insensitive, and trimmed on the device side.
const (
	CmdTare   = "TARE"
	CmdReset  = "RESET"
	CmdStatus = "STATUS"
	CmdInfo   = "INFO"
)

// Serial represents a connection to the FC2231 board.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	readings  chan Reading
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial device with the specified port, baud rate, and
// buffer size.
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
		readings:  make(chan Reading, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns the names of available serial ports.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Connect opens the serial port and starts reading samples.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readLoop()

	return nil
}

// Close closes the connection and stops reading.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.WithError(err).Warn("error closing serial port")
		}
		d.conn = nil
	}

	d.connected = false

	// The read loop owns the readings channel and closes it on exit, so a
	// send can never race a close.

	return nil
}

// Readings returns the channel of decoded samples.
func (d *Serial) Readings() <-chan Reading {
	return d.readings
}

// Send writes one command to the device. The command is upper-cased, trimmed,
// and newline-terminated.
func (d *Serial) Send(cmd string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write([]byte(formatCommand(cmd))); err != nil {
		return fmt.Errorf("failed to send command %q: %w", cmd, err)
	}
	return nil
}

// SetForceRange tells the device the force corresponding to full-scale output.
func (d *Serial) SetForceRange(newtons float64) error {
	if newtons <= 0 {
		return fmt.Errorf("force range must be > 0, got %g", newtons)
	}
	return d.Send(fmt.Sprintf("FORCE_RANGE=%g", newtons))
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// formatCommand normalizes a command for the wire.
func formatCommand(cmd string) string {
	return strings.ToUpper(strings.TrimSpace(cmd)) + "\n"
}

// readLoop reads lines from the serial port and decodes them into Readings.
// Diagnostic response lines and malformed lines are skipped; decoding errors
// never stop the loop.
func (d *Serial) readLoop() {
	defer close(d.readings)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic in readLoop: %v", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil && err != io.EOF {
					log.WithError(err).Error("error reading from serial port")
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, responseTag) {
				continue
			}

			reading, err := ParseReading(line)
			if err != nil {
				log.WithError(err).Debugf("skipping line %q", line)
				continue
			}
			reading.ReceivedAt = time.Now()

			// Send reading to channel (non-blocking)
			select {
			case d.readings <- reading:
			case <-d.ctx.Done():
				return
			default:
				// Channel full, log and skip
				log.Warn("readings channel full, dropping sample")
			}
		}
	}
}
