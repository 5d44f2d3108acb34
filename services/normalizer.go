package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"fuel-explorer/models"
	"fuel-explorer/utils"
)

// Known span of the dataset's model years.
const (
	DefaultMinModelYear = 1970
	DefaultMaxModelYear = 1982
)

// Normalizer turns RawVehicles into validated Vehicles.
type Normalizer struct {
	logger  *utils.Logger
	minYear int
	maxYear int
}

// NewNormalizer creates a Normalizer accepting model years in [minYear, maxYear]
// after two-digit expansion. Zero bounds select the dataset defaults.
func NewNormalizer(logger *utils.Logger, minYear, maxYear int) *Normalizer {
	if minYear == 0 {
		minYear = DefaultMinModelYear
	}
	if maxYear == 0 {
		maxYear = DefaultMaxModelYear
	}
	return &Normalizer{logger: logger, minYear: minYear, maxYear: maxYear}
}

// Normalize validates every raw record. Records that cannot be used are
// returned as exclusions rather than coerced. The input is not modified.
func (n *Normalizer) Normalize(raw []models.RawVehicle) *models.NormalizeResult {
	result := &models.NormalizeResult{
		Vehicles: make([]*models.Vehicle, 0, len(raw)),
	}

	for _, r := range raw {
		v, reason := n.NormalizeOne(r)
		if reason != "" {
			n.logger.Debug("[normalizer] Excluding record %q (%s): %s", r.ID, r.Name, reason)
			result.Excluded = append(result.Excluded, models.Exclusion{Raw: r, Reason: reason})
			continue
		}
		result.Vehicles = append(result.Vehicles, v)
	}

	n.logger.Info("[normalizer] Normalized %d → %d vehicles (excluded %d)",
		len(raw), len(result.Vehicles), len(result.Excluded))
	return result
}

// NormalizeOne converts a single record. A non-empty reason means the record
// was rejected and the returned vehicle is nil.
func (n *Normalizer) NormalizeOne(r models.RawVehicle) (*models.Vehicle, string) {
	id, err := strconv.Atoi(strings.TrimSpace(r.ID))
	if err != nil {
		return nil, "unparsable id"
	}

	name := normaliseText(r.Name)
	if name == "" {
		return nil, "empty name"
	}

	mpg, ok := parsePositive(r.MPG)
	if !ok {
		return nil, "mpg must be a positive number"
	}
	displacement, ok := parsePositive(r.Displacement)
	if !ok {
		return nil, "displacement must be a positive number"
	}
	weight, ok := parsePositive(r.Weight)
	if !ok {
		return nil, "weight must be a positive number"
	}
	acceleration, ok := parsePositive(r.Acceleration)
	if !ok {
		return nil, "acceleration must be a positive number"
	}

	cylinders, ok := parsePositiveInt(r.Cylinders)
	if !ok {
		return nil, "cylinders must be a positive integer"
	}

	rawYear, err := strconv.Atoi(strings.TrimSpace(r.ModelYear))
	if err != nil || rawYear < 0 {
		return nil, "unparsable model year"
	}
	year := NormalizeYear(rawYear)
	if year < n.minYear || year > n.maxYear {
		return nil, "model year " + strconv.Itoa(year) + " outside known span"
	}

	v := &models.Vehicle{
		ID:           id,
		MPG:          mpg,
		Cylinders:    cylinders,
		Displacement: displacement,
		Weight:       weight,
		Acceleration: acceleration,
		ModelYear:    year,
		Origin:       parseOrigin(r.Origin),
		Name:         name,
	}
	// Absent, null and "?" horsepower all end up nil.
	if hp, ok := parsePositive(r.Horsepower); ok {
		v.Horsepower = &hp
	}
	return v, ""
}

// NormalizeYear expands two-digit model years into the 1900s. Four-digit
// years pass through unchanged, so the function is idempotent.
func NormalizeYear(year int) int {
	if year >= 0 && year < 100 {
		return year + 1900
	}
	return year
}

func parsePositive(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

func parsePositiveInt(raw string) (int, bool) {
	f, ok := parsePositive(raw)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// parseOrigin maps anything outside the known regions onto OriginUnknown.
func parseOrigin(raw string) models.Origin {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.OriginUnknown
	}
	o := models.Origin(n)
	if !o.Known() {
		return models.OriginUnknown
	}
	return o
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
