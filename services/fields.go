package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fuel-explorer/models"
)

// Field reads one numeric value from a vehicle. Value reports false when the
// vehicle has no usable (strictly positive) value for the field.
type Field struct {
	Name  string
	Value func(v *models.Vehicle) (float64, bool)
}

// GroupKey derives a categorical key from a vehicle.
type GroupKey struct {
	Name string
	Of   func(v *models.Vehicle) string
}

var (
	FieldMPG          = Field{Name: "mpg", Value: func(v *models.Vehicle) (float64, bool) { return positive(v.MPG) }}
	FieldDisplacement = Field{Name: "displacement", Value: func(v *models.Vehicle) (float64, bool) { return positive(v.Displacement) }}
	FieldWeight       = Field{Name: "weight", Value: func(v *models.Vehicle) (float64, bool) { return positive(v.Weight) }}
	FieldAcceleration = Field{Name: "acceleration", Value: func(v *models.Vehicle) (float64, bool) { return positive(v.Acceleration) }}
	FieldCylinders    = Field{Name: "cylinders", Value: func(v *models.Vehicle) (float64, bool) { return positive(float64(v.Cylinders)) }}
	FieldYear         = Field{Name: "year", Value: func(v *models.Vehicle) (float64, bool) { return positive(float64(v.ModelYear)) }}
	FieldHorsepower   = Field{Name: "horsepower", Value: func(v *models.Vehicle) (float64, bool) {
		if v.Horsepower == nil {
			return 0, false
		}
		return positive(*v.Horsepower)
	}}
)

var (
	KeyManufacturer = GroupKey{Name: "manufacturer", Of: func(v *models.Vehicle) string {
		if fields := strings.Fields(v.Name); len(fields) > 0 {
			return fields[0]
		}
		return ""
	}}
	KeyYear      = GroupKey{Name: "year", Of: func(v *models.Vehicle) string { return strconv.Itoa(v.ModelYear) }}
	KeyOrigin    = GroupKey{Name: "origin", Of: func(v *models.Vehicle) string { return v.Origin.Name() }}
	KeyCylinders = GroupKey{Name: "cylinders", Of: func(v *models.Vehicle) string { return strconv.Itoa(v.Cylinders) }}
	KeyBand      = GroupKey{Name: "efficiency", Of: func(v *models.Vehicle) string { return string(v.Band()) }}
)

var fieldsByName = map[string]Field{
	FieldMPG.Name:          FieldMPG,
	FieldDisplacement.Name: FieldDisplacement,
	FieldWeight.Name:       FieldWeight,
	FieldAcceleration.Name: FieldAcceleration,
	FieldCylinders.Name:    FieldCylinders,
	FieldYear.Name:         FieldYear,
	FieldHorsepower.Name:   FieldHorsepower,
}

var keysByName = map[string]GroupKey{
	KeyManufacturer.Name: KeyManufacturer,
	"make":               KeyManufacturer,
	KeyYear.Name:         KeyYear,
	KeyOrigin.Name:       KeyOrigin,
	KeyCylinders.Name:    KeyCylinders,
	KeyBand.Name:         KeyBand,
}

// ParseField looks up a numeric field by name.
func ParseField(name string) (Field, error) {
	f, ok := fieldsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Field{}, fmt.Errorf("field: unknown field %q: %w", name, ErrInvalidArgument)
	}
	return f, nil
}

// ParseKey looks up a grouping key by name.
func ParseKey(name string) (GroupKey, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return GroupKey{}, fmt.Errorf("group: unknown key %q: %w", name, ErrInvalidArgument)
	}
	return k, nil
}

func positive(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
