package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecord(t *testing.T) {
	rec := DefaultRecord()

	assert.Equal(t, 0.5, rec.TareVoltage)
	assert.Equal(t, 0.5, rec.VoltageMin)
	assert.Equal(t, 4.5, rec.VoltageMax)
	assert.Equal(t, 100.0, rec.MaxForceNewtons)
	assert.Equal(t, 0.0, rec.Stability)
	assert.Equal(t, "FC2231", rec.SensorModel)
	assert.Empty(t, rec.CalibrationDate)
	require.NoError(t, rec.Validate())
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr bool
	}{
		{"default is valid", func(r *Record) {}, false},
		{"inverted range", func(r *Record) { r.VoltageMin, r.VoltageMax = 4.5, 0.5 }, true},
		{"degenerate range", func(r *Record) { r.VoltageMax = r.VoltageMin }, true},
		{"tare below plausible", func(r *Record) { r.TareVoltage = 0.1 }, true},
		{"tare above plausible", func(r *Record) { r.TareVoltage = 5.5 }, true},
		{"zero max force", func(r *Record) { r.MaxForceNewtons = 0 }, true},
		{"negative max force", func(r *Record) { r.MaxForceNewtons = -10 }, true},
		{"absurd max force", func(r *Record) { r.MaxForceNewtons = 20000 }, true},
		{"high but plausible tare", func(r *Record) { r.TareVoltage = 4.9 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := DefaultRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecord_CalibratedAt(t *testing.T) {
	rec := DefaultRecord()

	_, ok := rec.CalibratedAt()
	assert.False(t, ok, "never-calibrated record has no timestamp")

	rec.CalibrationDate = "2026-08-25T09:00:00Z"
	at, ok := rec.CalibratedAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC), at)

	rec.CalibrationDate = "garbage"
	_, ok = rec.CalibratedAt()
	assert.False(t, ok)
}

func TestRecord_StabilityGrade(t *testing.T) {
	tests := []struct {
		stability float64
		want      string
	}{
		{0.0, "Excellent"},
		{0.0009, "Excellent"},
		{0.001, "Good"},
		{0.0049, "Good"},
		{0.005, "Fair"},
		{0.019, "Fair"},
		{0.02, "Poor"},
		{1.0, "Poor"},
	}

	for _, tt := range tests {
		rec := Record{Stability: tt.stability}
		assert.Equal(t, tt.want, rec.StabilityGrade(), "stability %v", tt.stability)
	}
}
