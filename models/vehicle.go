package models

import "strconv"

// RawVehicle holds a record as it arrives from the data source, every field in
// text form. Numeric fields may be empty, "?" or otherwise unparsable.
type RawVehicle struct {
	ID           string
	MPG          string
	Cylinders    string
	Displacement string
	Horsepower   string
	Weight       string
	Acceleration string
	ModelYear    string
	Origin       string
	Name         string
}

// Vehicle is the normalized, validated record every pipeline stage works on.
type Vehicle struct {
	ID           int      `json:"id"`
	MPG          float64  `json:"mpg"`
	Cylinders    int      `json:"cylinders"`
	Displacement float64  `json:"displacement"`
	Horsepower   *float64 `json:"horsepower"`
	Weight       float64  `json:"weight"`
	Acceleration float64  `json:"acceleration"`
	ModelYear    int      `json:"modelYear"`
	Origin       Origin   `json:"origin"`
	Name         string   `json:"carName"`
}

// Band returns the efficiency band derived from the vehicle's MPG.
func (v *Vehicle) Band() Band {
	return BandFor(v.MPG)
}

// Raw renders the vehicle back into its text form. Normalizing the result
// yields the same vehicle.
func (v *Vehicle) Raw() RawVehicle {
	hp := "?"
	if v.Horsepower != nil {
		hp = formatFloat(*v.Horsepower)
	}
	return RawVehicle{
		ID:           strconv.Itoa(v.ID),
		MPG:          formatFloat(v.MPG),
		Cylinders:    strconv.Itoa(v.Cylinders),
		Displacement: formatFloat(v.Displacement),
		Horsepower:   hp,
		Weight:       formatFloat(v.Weight),
		Acceleration: formatFloat(v.Acceleration),
		ModelYear:    strconv.Itoa(v.ModelYear),
		Origin:       strconv.Itoa(int(v.Origin)),
		Name:         v.Name,
	}
}

// Exclusion records a raw vehicle that failed validation and why.
type Exclusion struct {
	Raw    RawVehicle
	Reason string
}

// NormalizeResult splits a raw batch into usable vehicles and exclusions.
type NormalizeResult struct {
	Vehicles []*Vehicle
	Excluded []Exclusion
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
