package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestConvert_DefaultRecord(t *testing.T) {
	rec := DefaultRecord()

	tests := []struct {
		name        string
		voltage     float64
		wantNewtons float64
	}{
		{"zero force at range minimum", 0.5, 0.0},
		{"full scale at range maximum", 4.5, 100.0},
		{"midpoint", 2.5, 50.0},
		{"below range clamps to minimum", 0.1, 0.0},
		{"above range clamps to maximum", 5.2, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, g := Convert(tt.voltage, rec)
			assert.InDelta(t, tt.wantNewtons, n, eps)
			assert.InDelta(t, n*NewtonsToGrams, g, eps)
		})
	}
}

func TestConvert_TaredRecord(t *testing.T) {
	rec := DefaultRecord()
	rec.TareVoltage = 1.0

	tests := []struct {
		name        string
		voltage     float64
		wantNewtons float64
	}{
		{"at tare point", 1.0, 0.0},
		{"below tare clamps to zero", 0.7, 0.0},
		// 2.0V: adjusted = 2.0-1.0+0.5 = 1.5, ratio = 1.0/4.0
		{"above tare", 2.0, 25.0},
		// 4.5V: adjusted = 4.0, ratio = 3.5/4.0. The tare offset eats part
		// of the range, so full-scale input no longer reaches max force.
		{"full scale with tare offset", 4.5, 87.5},
		// 5.0V clamps to 4.5 before the tare subtraction; same as above.
		{"over-range clamps before tare subtraction", 5.0, 87.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := Convert(tt.voltage, rec)
			assert.InDelta(t, tt.wantNewtons, n, eps)
		})
	}
}

func TestConvert_NeverNegative(t *testing.T) {
	rec := DefaultRecord()
	rec.TareVoltage = 2.5

	for _, v := range []float64{0.0, 0.5, 1.0, 2.0, 2.49} {
		n, g := Convert(v, rec)
		assert.Equal(t, 0.0, n, "voltage %.2f", v)
		assert.Equal(t, 0.0, g, "voltage %.2f", v)
	}
}

func TestConvert_GramsRatio(t *testing.T) {
	rec := DefaultRecord()

	for _, v := range []float64{0.5, 1.23, 2.5, 3.999, 4.5} {
		n, g := Convert(v, rec)
		assert.InDelta(t, n*101.97, g, eps, "voltage %.3f", v)
	}
}

func TestConvert_Deterministic(t *testing.T) {
	rec := DefaultRecord()
	rec.TareVoltage = 0.731

	n1, g1 := Convert(1.234, rec)
	n2, g2 := Convert(1.234, rec)
	assert.Equal(t, n1, n2)
	assert.Equal(t, g1, g2)
}

func TestConvert_NarrowRange(t *testing.T) {
	rec := Record{
		TareVoltage:     1.0,
		MaxForceNewtons: 10.0,
		VoltageMin:      1.0,
		VoltageMax:      2.0,
	}

	n, _ := Convert(1.5, rec)
	assert.InDelta(t, 5.0, n, eps)
	n, _ = Convert(2.0, rec)
	assert.InDelta(t, 10.0, n, eps)
}
