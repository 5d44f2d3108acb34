package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-explorer/models"
)

func rawVehicle(id, mpg, year, hp string) models.RawVehicle {
	return models.RawVehicle{
		ID:           id,
		MPG:          mpg,
		Cylinders:    "8",
		Displacement: "307",
		Horsepower:   hp,
		Weight:       "3504",
		Acceleration: "12",
		ModelYear:    year,
		Origin:       "1",
		Name:         "chevrolet   chevelle malibu ",
	}
}

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{70, 1970},
		{82, 1982},
		{0, 1900},
		{99, 1999},
		{1970, 1970},
		{2024, 2024},
	}
	for _, tt := range tests {
		got := NormalizeYear(tt.in)
		assert.Equal(t, tt.want, got, "NormalizeYear(%d)", tt.in)
		assert.Equal(t, got, NormalizeYear(got), "NormalizeYear must be idempotent for %d", tt.in)
	}
}

func TestNormalizeTwoDigitYears(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)
	res := n.Normalize([]models.RawVehicle{
		rawVehicle("1", "18", "70", "130"),
		rawVehicle("2", "46.6", "82", "65"),
	})

	require.Len(t, res.Vehicles, 2)
	assert.Empty(t, res.Excluded)
	assert.Equal(t, 1970, res.Vehicles[0].ModelYear)
	assert.Equal(t, 1982, res.Vehicles[1].ModelYear)
	assert.Equal(t, "chevrolet chevelle malibu", res.Vehicles[0].Name)
	assert.Equal(t, 46.6, res.Vehicles[1].MPG)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)
	raw := []models.RawVehicle{
		rawVehicle("1", "18", "70", "130"),
		rawVehicle("2", "31.5", "1979", "?"),
		rawVehicle("3", " 24 ", "75", ""),
	}

	first := n.Normalize(raw)
	require.Len(t, first.Vehicles, 3)

	again := make([]models.RawVehicle, len(first.Vehicles))
	for i, v := range first.Vehicles {
		again[i] = v.Raw()
	}
	second := n.Normalize(again)

	assert.Equal(t, first.Vehicles, second.Vehicles)
}

func TestNormalizeHorsepowerAbsentForms(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)
	for _, hp := range []string{"", "?", "null", "abc", "0"} {
		v, reason := n.NormalizeOne(rawVehicle("1", "18", "70", hp))
		require.Empty(t, reason, "horsepower %q must not exclude the record", hp)
		assert.Nil(t, v.Horsepower, "horsepower %q must be absent, not zero", hp)
	}

	v, reason := n.NormalizeOne(rawVehicle("1", "18", "70", "97.5"))
	require.Empty(t, reason)
	require.NotNil(t, v.Horsepower)
	assert.Equal(t, 97.5, *v.Horsepower)
}

func TestNormalizeExcludesInvalidRecords(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)

	tests := []struct {
		name string
		edit func(r *models.RawVehicle)
	}{
		{"bad id", func(r *models.RawVehicle) { r.ID = "x" }},
		{"zero mpg", func(r *models.RawVehicle) { r.MPG = "0" }},
		{"negative mpg", func(r *models.RawVehicle) { r.MPG = "-3" }},
		{"text mpg", func(r *models.RawVehicle) { r.MPG = "?" }},
		{"missing weight", func(r *models.RawVehicle) { r.Weight = "" }},
		{"zero displacement", func(r *models.RawVehicle) { r.Displacement = "0" }},
		{"NaN acceleration", func(r *models.RawVehicle) { r.Acceleration = "NaN" }},
		{"fractional cylinders", func(r *models.RawVehicle) { r.Cylinders = "4.5" }},
		{"year outside span", func(r *models.RawVehicle) { r.ModelYear = "1990" }},
		{"unparsable year", func(r *models.RawVehicle) { r.ModelYear = "seventy" }},
		{"blank name", func(r *models.RawVehicle) { r.Name = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rawVehicle("1", "18", "70", "130")
			tt.edit(&r)
			res := n.Normalize([]models.RawVehicle{r})
			assert.Empty(t, res.Vehicles)
			require.Len(t, res.Excluded, 1)
			assert.NotEmpty(t, res.Excluded[0].Reason)
			assert.Equal(t, r, res.Excluded[0].Raw)
		})
	}
}

func TestNormalizeUnknownOrigin(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)
	for _, origin := range []string{"0", "7", "", "mars"} {
		r := rawVehicle("1", "18", "70", "130")
		r.Origin = origin
		v, reason := n.NormalizeOne(r)
		require.Empty(t, reason)
		assert.Equal(t, models.OriginUnknown, v.Origin, "origin %q", origin)
	}
}

func TestNormalizeCustomYearSpan(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 1960, 2030)
	v, reason := n.NormalizeOne(rawVehicle("1", "18", "2021", "130"))
	require.Empty(t, reason)
	assert.Equal(t, 2021, v.ModelYear)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	n := NewNormalizer(newTestLogger(t), 0, 0)
	raw := []models.RawVehicle{rawVehicle("1", "18", "70", "?")}
	before := raw[0]

	n.Normalize(raw)
	assert.Equal(t, before, raw[0])
}
