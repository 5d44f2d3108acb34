package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"fuel-explorer/models"
)

var csvHeader = []string{
	"id", "name", "mpg", "cylinders", "displacement", "horsepower",
	"weight", "acceleration", "model_year", "origin", "efficiency",
}

// CSVWriter exports normalized vehicles as CSV rows under a fixed header.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	out    *csv.Writer
	closer io.Closer
}

// NewCSVWriter creates (or truncates) the file at path, creating parent
// directories as needed.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	c, err := newCSVWriter(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return c, nil
}

// NewCSVStream writes to w, e.g. stdout. Close flushes but leaves w open.
func NewCSVStream(w io.Writer) (*CSVWriter, error) {
	return newCSVWriter(w, nil)
}

func newCSVWriter(w io.Writer, closer io.Closer) (*CSVWriter, error) {
	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{out: out, closer: closer}, nil
}

// WriteVehicles appends one row per vehicle.
func (c *CSVWriter) WriteVehicles(vehicles []*models.Vehicle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range vehicles {
		if err := c.out.Write(vehicleRow(v)); err != nil {
			return fmt.Errorf("csv: write row %d: %w", v.ID, err)
		}
	}
	c.out.Flush()
	return c.out.Error()
}

// vehicleRow renders v in header order. Missing horsepower is an empty cell.
func vehicleRow(v *models.Vehicle) []string {
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

	hp := ""
	if v.Horsepower != nil {
		hp = num(*v.Horsepower)
	}
	return []string{
		strconv.Itoa(v.ID), v.Name, num(v.MPG), strconv.Itoa(v.Cylinders),
		num(v.Displacement), hp, num(v.Weight), num(v.Acceleration),
		strconv.Itoa(v.ModelYear), v.Origin.Name(), string(v.Band()),
	}
}

// Close flushes pending rows and releases the file, if any.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.out.Flush()
	if err := c.out.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
