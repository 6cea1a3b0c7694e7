package fc2231

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/forcelab/forcemon/pkg/config"
)

// Mock simulates an FC2231 board for testing and development. It emits a
// noisy idle voltage with periodic simulated presses, and computes its
// device-side force fields from its own internal calibration, which can drift
// from the host's record exactly like real firmware.
type Mock struct {
	cfg *config.MockConfig

	readings  chan Reading
	mu        sync.RWMutex
	done      chan struct{}
	connected bool
	closed    bool

	// Simulation state
	startTime   time.Time
	seq         uint64
	tareVoltage float64
	maxForce    float64
}

// Mock sensor range mirrors the FC2231 datasheet output.
const (
	mockVoltageMin = 0.5
	mockVoltageMax = 4.5
)

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.Default().Mock
	}

	return &Mock{
		cfg:       cfg,
		readings:  make(chan Reading, DefaultBufferSize),
		maxForce:  100.0,
		connected: false,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	if m.closed {
		return fmt.Errorf("device closed")
	}

	m.connected = true
	m.startTime = time.Now()
	m.seq = 0
	m.tareVoltage = m.cfg.BaseVoltage
	m.done = make(chan struct{})

	go m.generate()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	close(m.done)
	m.connected = false
	m.closed = true

	// The generator owns the readings channel and closes it on exit.

	return nil
}

// Readings returns the channel of simulated samples.
func (m *Mock) Readings() <-chan Reading {
	return m.readings
}

// Send handles the same command set as the sketch.
func (m *Mock) Send(cmd string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	cmd = strings.ToUpper(strings.TrimSpace(cmd))
	switch {
	case cmd == CmdTare:
		// Re-base the device-side zero on the current idle voltage.
		m.tareVoltage = m.cfg.BaseVoltage
	case cmd == CmdReset:
		m.seq = 0
		m.startTime = time.Now()
	case cmd == CmdStatus, cmd == CmdInfo:
		// Diagnostic-only on real hardware; nothing to simulate.
	case strings.HasPrefix(cmd, "FORCE_RANGE="):
		v, err := strconv.ParseFloat(strings.TrimPrefix(cmd, "FORCE_RANGE="), 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("invalid force range in %q", cmd)
		}
		m.maxForce = v
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// SetForceRange adjusts the simulated full-scale force.
func (m *Mock) SetForceRange(newtons float64) error {
	return m.Send(fmt.Sprintf("FORCE_RANGE=%g", newtons))
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generate emits simulated readings at the configured sample rate.
func (m *Mock) generate() {
	defer close(m.readings)

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			reading, ok := m.nextReading()
			if !ok {
				return
			}
			select {
			case m.readings <- reading:
			case <-m.done:
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// nextReading builds one simulated sample.
func (m *Mock) nextReading() (Reading, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return Reading{}, false
	}

	now := time.Now()
	elapsed := now.Sub(m.startTime)

	// Periodic press: force ramps on for PressDuration out of every
	// PressPeriod.
	applied := 0.0
	if m.cfg.PressPeriod > 0 {
		phase := elapsed % m.cfg.PressPeriod
		if phase < m.cfg.PressDuration {
			applied = m.cfg.PressNewtons
		}
	}

	// Deterministic pseudo-noise, same trick as a cheap ADC dither.
	noise := (math.Sin(float64(elapsed.Nanoseconds())*0.001) +
		math.Cos(float64(elapsed.Nanoseconds())*0.0013)) *
		m.cfg.NoiseLevel * 0.5

	span := mockVoltageMax - mockVoltageMin
	voltage := m.cfg.BaseVoltage + (applied/m.maxForce)*span + noise
	if voltage < mockVoltageMin {
		voltage = mockVoltageMin
	}
	if voltage > mockVoltageMax {
		voltage = mockVoltageMax
	}

	// Device-side force from the mock's own calibration.
	adjusted := voltage - m.tareVoltage + mockVoltageMin
	if adjusted < mockVoltageMin {
		adjusted = mockVoltageMin
	}
	if adjusted > mockVoltageMax {
		adjusted = mockVoltageMax
	}
	forceN := (adjusted - mockVoltageMin) / span * m.maxForce
	if forceN < 0 {
		forceN = 0
	}

	m.seq++
	return Reading{
		Seq:          m.seq,
		Voltage:      voltage,
		Temperature:  m.cfg.Temperature,
		ForceNewtons: forceN,
		ForceGrams:   forceN * 101.97,
		DeviceMillis: uint64(elapsed.Milliseconds()),
		ReceivedAt:   now,
	}, true
}
