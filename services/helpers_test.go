package services

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"fuel-explorer/models"
	"fuel-explorer/utils"
)

func newTestLogger(t *testing.T) *utils.Logger { return utils.WrapZap(zaptest.NewLogger(t)) }

func vehicle(id int, name string, mpg float64, year int, origin models.Origin) *models.Vehicle {
	hp := 100.0
	return &models.Vehicle{
		ID:           id,
		Name:         name,
		MPG:          mpg,
		Cylinders:    4,
		Displacement: 120,
		Horsepower:   &hp,
		Weight:       2500,
		Acceleration: 15,
		ModelYear:    year,
		Origin:       origin,
	}
}

func ids(vs []*models.Vehicle) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func originPtr(o models.Origin) *models.Origin { return &o }
