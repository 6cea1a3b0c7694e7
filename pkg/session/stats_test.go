package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Empty(t *testing.T) {
	s := NewStats()

	sum, ok := s.Summary()
	assert.False(t, ok)
	assert.Zero(t, sum.Readings)
	assert.Zero(t, sum.Samples)
}

func TestStats_NoiseFloorExcluded(t *testing.T) {
	s := NewStats()
	s.Add(0.0)
	s.Add(0.01)
	s.Add(0.05) // at the floor, still excluded
	s.Add(1.0)

	assert.Equal(t, 4, s.Count())

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, 4, sum.Readings)
	assert.Equal(t, 1, sum.Samples)
	assert.Equal(t, 1.0, sum.Min)
	assert.Equal(t, 1.0, sum.Max)
	assert.Equal(t, 1.0, sum.Mean)
	assert.Equal(t, 0.0, sum.StdDev, "single sample has no spread")
}

func TestStats_KnownValues(t *testing.T) {
	s := NewStats()
	for _, f := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(f)
	}

	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, 8, sum.Samples)
	assert.Equal(t, 2.0, sum.Min)
	assert.Equal(t, 9.0, sum.Max)
	assert.Equal(t, 5.0, sum.Mean)
	// Unbiased sample standard deviation of the classic set: sqrt(32/7).
	assert.InDelta(t, 2.13808993529939, sum.StdDev, 1e-12)
}

func TestStats_OnlyIdleReadings(t *testing.T) {
	s := NewStats()
	for i := 0; i < 50; i++ {
		s.Add(0.0)
	}

	sum, ok := s.Summary()
	assert.False(t, ok)
	assert.Equal(t, 50, sum.Readings)
	assert.Zero(t, sum.Samples)
}

func TestStats_DurationAdvances(t *testing.T) {
	s := NewStats()
	s.Add(1.0)
	sum, _ := s.Summary()
	assert.GreaterOrEqual(t, sum.Duration.Nanoseconds(), int64(0))
	assert.False(t, s.Start().IsZero())
}
