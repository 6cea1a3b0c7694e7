package session

import "sort"

// Window is a fixed-size rolling window over a value stream with a median
// accessor. The median rejects the single-sample spikes a mean would smear
// across the display.
type Window struct {
	size int
	vals []float64
}

// NewWindow creates a rolling window. Sizes below 1 behave as size 1
// (no smoothing).
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{size: size}
}

// Push adds a value, evicting the oldest when the window is full.
func (w *Window) Push(v float64) {
	w.vals = append(w.vals, v)
	if len(w.vals) > w.size {
		w.vals = w.vals[1:]
	}
}

// Len returns the number of values currently held.
func (w *Window) Len() int {
	return len(w.vals)
}

// Median returns the median of the held values, or 0 when empty. With an even
// count it averages the two middle values.
func (w *Window) Median() float64 {
	n := len(w.vals)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, w.vals)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
