package session

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// exportTimeLayout is the wall-clock timestamp written per row, millisecond
// precision. Device-relative timestamps are deliberately not exported.
const exportTimeLayout = "2006-01-02 15:04:05.000"

// Row is one exported reading.
type Row struct {
	At           time.Time
	Voltage      float64
	ForceNewtons float64
	ForceGrams   float64
}

// Exporter buffers readings in memory and writes them out as a CSV file on
// Flush. Interrupting a monitoring session flushes whatever was recorded.
type Exporter struct {
	dir  string
	rows []Row
}

// NewExporter creates an exporter writing into dir ("." when empty).
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir}
}

// Record buffers one reading.
func (e *Exporter) Record(r Row) {
	e.rows = append(e.rows, r)
}

// Len returns the number of buffered rows.
func (e *Exporter) Len() int {
	return len(e.rows)
}

// Flush writes the buffered rows to a timestamped CSV file and clears the
// buffer. With nothing buffered it writes no file and returns an empty path.
func (e *Exporter) Flush() (string, error) {
	if len(e.rows) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("FC2231_Force_Data_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Timestamp", "Voltage (V)", "Force (N)", "Force (g)"}); err != nil {
		return "", fmt.Errorf("write export header: %w", err)
	}
	for _, r := range e.rows {
		rec := []string{
			r.At.Format(exportTimeLayout),
			strconv.FormatFloat(r.Voltage, 'f', 4, 64),
			strconv.FormatFloat(r.ForceNewtons, 'f', 3, 64),
			strconv.FormatFloat(r.ForceGrams, 'f', 1, 64),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}

	e.rows = nil
	return path, nil
}
