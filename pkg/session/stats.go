package session

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NoiseFloorNewtons is the force below which a reading counts as an idle
// sensor. Idle readings are counted but excluded from the force statistics.
const NoiseFloorNewtons = 0.05

// Stats accumulates per-session force statistics.
type Stats struct {
	start  time.Time
	count  int
	forces []float64
}

// Summary is a snapshot of the session statistics. Min, Max, Mean, and StdDev
// cover only forces above the noise floor.
type Summary struct {
	Readings int
	Samples  int // Readings above the noise floor
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	Duration time.Duration
}

// NewStats starts a fresh session.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// Add records one force reading in Newtons.
func (s *Stats) Add(forceNewtons float64) {
	s.count++
	if forceNewtons > NoiseFloorNewtons {
		s.forces = append(s.forces, forceNewtons)
	}
}

// Count returns the number of readings recorded so far, idle ones included.
func (s *Stats) Count() int {
	return s.count
}

// Start returns the session start time.
func (s *Stats) Start() time.Time {
	return s.start
}

// Summary returns the current statistics. The second return value is false
// when no reading has exceeded the noise floor yet.
func (s *Stats) Summary() (Summary, bool) {
	sum := Summary{
		Readings: s.count,
		Samples:  len(s.forces),
		Duration: time.Since(s.start),
	}
	if len(s.forces) == 0 {
		return sum, false
	}

	sum.Min = floats.Min(s.forces)
	sum.Max = floats.Max(s.forces)
	sum.Mean = stat.Mean(s.forces, nil)
	if len(s.forces) > 1 {
		sum.StdDev = stat.StdDev(s.forces, nil)
	}
	return sum, true
}
