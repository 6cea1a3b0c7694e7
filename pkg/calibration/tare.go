package calibration

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientSamples is returned when a tare is requested with fewer than
// two samples; the sample standard deviation is undefined below that.
var ErrInsufficientSamples = errors.New("tare requires at least 2 samples")

const (
	// DefaultTareSamples is the number of voltage readings averaged by a tare.
	DefaultTareSamples = 20
	// DefaultTareDelay is the pause between consecutive tare samples. It
	// decorrelates ADC readings and averages out transient noise; tests with
	// an in-memory sample source set it to zero.
	DefaultTareDelay = 50 * time.Millisecond
)

// SampleFunc returns one raw sensor voltage.
type SampleFunc func() (float64, error)

// Tare samples the sensor n times with the given inter-sample delay and
// returns a new record whose zero-force reference is the sample mean and
// whose stability metric is the unbiased sample standard deviation. All other
// fields are copied from prior; the calibration timestamp is set to the
// operation's completion time.
//
// Sampling is sequential on purpose: each reading must reflect settled sensor
// state. Tare does not persist anything, so callers can preview the result
// and decide whether to commit it with Store.Save.
func Tare(sample SampleFunc, n int, delay time.Duration, prior Record) (Record, error) {
	if n < 2 {
		return Record{}, ErrInsufficientSamples
	}

	volts := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		v, err := sample()
		if err != nil {
			return Record{}, fmt.Errorf("tare sample %d/%d: %w", i+1, n, err)
		}
		volts = append(volts, v)
	}

	mean, std := stat.MeanStdDev(volts, nil)

	rec := prior
	rec.TareVoltage = mean
	rec.Stability = std
	rec.CalibrationDate = time.Now().Format(time.RFC3339)
	return rec, nil
}

// QuickTare is a single-sample shortcut: the current voltage becomes the new
// zero-force reference and the stability metric is zeroed because it was not
// measured. Like Tare, it has no persistence side effect.
func QuickTare(voltage float64, prior Record) Record {
	rec := prior
	rec.TareVoltage = voltage
	rec.Stability = 0.0
	rec.CalibrationDate = time.Now().Format(time.RFC3339)
	return rec
}
