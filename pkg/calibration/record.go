package calibration

import (
	"fmt"
	"time"
)

const (
	// NewtonsToGrams converts force in Newtons to grams-force (1 N = 101.97 gf
	// under standard gravity).
	NewtonsToGrams = 101.97

	// DefaultVoltageMin is the FC2231 minimum output voltage per datasheet.
	DefaultVoltageMin = 0.5
	// DefaultVoltageMax is the FC2231 maximum output voltage per datasheet.
	DefaultVoltageMax = 4.5
	// DefaultMaxForceNewtons is the force at full-scale output for an
	// uncalibrated sensor.
	DefaultMaxForceNewtons = 100.0
)

// Stability grade thresholds in volts. Anything above gradeFair is Poor.
const (
	gradeExcellent = 0.001 // 1 mV
	gradeGood      = 0.005 // 5 mV
	gradeFair      = 0.02  // 20 mV
)

// Record holds the persisted calibration for an FC2231 force sensor.
// Only the float fields participate in conversion; the string fields are
// informational metadata carried through unchanged.
type Record struct {
	TareVoltage     float64 `json:"tare_voltage"`
	MaxForceNewtons float64 `json:"max_force_newtons"`
	VoltageMin      float64 `json:"voltage_min"`
	VoltageMax      float64 `json:"voltage_max"`
	CalibrationDate string  `json:"calibration_date"`
	Stability       float64 `json:"calibration_stability"`
	SerialPort      string  `json:"serial_port"`
	ArduinoBoard    string  `json:"arduino_board"`
	SensorModel     string  `json:"sensor_model"`
	Version         string  `json:"version"`
}

// DefaultRecord returns the calibration used before any tare has been
// performed: the zero-force reference sits at the bottom of the sensor's
// output range.
func DefaultRecord() Record {
	return Record{
		TareVoltage:     DefaultVoltageMin,
		MaxForceNewtons: DefaultMaxForceNewtons,
		VoltageMin:      DefaultVoltageMin,
		VoltageMax:      DefaultVoltageMax,
		Stability:       0.0,
		SerialPort:      "COM3",
		ArduinoBoard:    "Uno R3",
		SensorModel:     "FC2231",
		Version:         "1.0",
	}
}

// Validate checks the record against the sensor's physical limits.
func (r Record) Validate() error {
	if r.VoltageMin >= r.VoltageMax {
		return fmt.Errorf("voltage range invalid: min %.4f >= max %.4f", r.VoltageMin, r.VoltageMax)
	}
	if r.TareVoltage < 0.4 || r.TareVoltage > 5.0 {
		return fmt.Errorf("tare voltage %.4f outside plausible range [0.4, 5.0]", r.TareVoltage)
	}
	if r.MaxForceNewtons <= 0 || r.MaxForceNewtons > 10000 {
		return fmt.Errorf("max force %.1f outside plausible range (0, 10000]", r.MaxForceNewtons)
	}
	return nil
}

// CalibratedAt parses the calibration timestamp. The second return value is
// false when the record has never been calibrated.
func (r Record) CalibratedAt() (time.Time, bool) {
	if r.CalibrationDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.CalibrationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StabilityGrade maps the tare standard deviation to a human-readable
// assessment of measurement noise.
func (r Record) StabilityGrade() string {
	switch {
	case r.Stability < gradeExcellent:
		return "Excellent"
	case r.Stability < gradeGood:
		return "Good"
	case r.Stability < gradeFair:
		return "Fair"
	default:
		return "Poor"
	}
}
