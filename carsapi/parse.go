package carsapi

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"fuel-explorer/models"
)

// ErrMalformedBody is returned when a payload is neither a record array nor
// an object with a "data" array.
var ErrMalformedBody = errors.New("carsapi: malformed body")

// ParseVehicles extracts raw vehicles from an API payload. It accepts a bare
// JSON array or {"data": [...], "pagination": {"totalPages": N}} and returns
// the page count, which is 1 when the payload carries no pagination.
func ParseVehicles(body []byte) ([]models.RawVehicle, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, ErrMalformedBody
	}

	root := gjson.ParseBytes(body)
	data := root
	totalPages := 1
	if root.IsObject() {
		data = root.Get("data")
		if tp := root.Get("pagination.totalPages"); tp.Type == gjson.Number && tp.Int() > 0 {
			totalPages = int(tp.Int())
		}
	}
	if !data.IsArray() {
		return nil, 0, ErrMalformedBody
	}

	records := make([]models.RawVehicle, 0, len(data.Array()))
	data.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			records = append(records, toRaw(item))
		}
		return true
	})
	return records, totalPages, nil
}

// LoadFile reads a payload saved to disk in either shape ParseVehicles accepts.
func LoadFile(path string) ([]models.RawVehicle, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("carsapi: read %q: %w", path, err)
	}
	records, _, err := ParseVehicles(body)
	if err != nil {
		return nil, fmt.Errorf("carsapi: parse %q: %w", path, err)
	}
	return records, nil
}

func toRaw(item gjson.Result) models.RawVehicle {
	return models.RawVehicle{
		ID:           text(item, "id"),
		MPG:          text(item, "mpg"),
		Cylinders:    text(item, "cylinders"),
		Displacement: text(item, "displacement"),
		Horsepower:   text(item, "horsepower"),
		Weight:       text(item, "weight"),
		Acceleration: text(item, "acceleration"),
		ModelYear:    text(item, "modelYear", "model_year", "year"),
		Origin:       text(item, "origin"),
		Name:         text(item, "carName", "car_name", "name"),
	}
}

// text returns the first present path as text. Numbers keep their literal
// form; null and missing fields become "".
func text(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := item.Get(p)
		if !r.Exists() {
			continue
		}
		if r.Type == gjson.Null {
			return ""
		}
		return r.String()
	}
	return ""
}
