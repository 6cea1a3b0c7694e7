package fc2231

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedLine marks a data line that could not be decoded. Callers skip
// the line and continue; a single bad line never terminates the read loop.
var ErrMalformedLine = errors.New("malformed data line")

// dataFields is the fixed field count of one data line:
// seq,voltage,V,temp,force_N,N,force_g,g,timestamp_ms
const dataFields = 9

// Reading represents one decoded sample from the sensor stream.
//
// ForceNewtons and ForceGrams are the device-computed values as transmitted.
// The device may be running with stale calibration, so hosts that recalibrate
// should recompute force from Voltage with calibration.Convert instead of
// trusting these fields.
type Reading struct {
	Seq          uint64    // Monotonically increasing per session, starts at 1
	Voltage      float64   // Raw sensor output (V)
	Temperature  float64   // Device-reported temperature (C); may be a placeholder
	ForceNewtons float64   // Device-computed force (N)
	ForceGrams   float64   // Device-computed force (gf)
	DeviceMillis uint64    // Milliseconds since device boot, not wall-clock
	ReceivedAt   time.Time // Host wall-clock time the line was received
}

// ParseReading decodes one data line. Unit columns (positions 2, 5, 7) are
// positional filler and are not validated.
func ParseReading(line string) (Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) != dataFields {
		return Reading{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, dataFields, len(parts))
	}

	seq, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: sequence %q", ErrMalformedLine, parts[0])
	}

	voltage, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: voltage %q", ErrMalformedLine, parts[1])
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: temperature %q", ErrMalformedLine, parts[3])
	}

	forceN, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: force (N) %q", ErrMalformedLine, parts[4])
	}

	forceG, err := strconv.ParseFloat(strings.TrimSpace(parts[6]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: force (g) %q", ErrMalformedLine, parts[6])
	}

	millis, err := strconv.ParseUint(strings.TrimSpace(parts[8]), 10, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: timestamp %q", ErrMalformedLine, parts[8])
	}

	return Reading{
		Seq:          seq,
		Voltage:      voltage,
		Temperature:  temp,
		ForceNewtons: forceN,
		ForceGrams:   forceG,
		DeviceMillis: millis,
	}, nil
}
