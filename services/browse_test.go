package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-explorer/models"
)

func TestBrowsePipeline(t *testing.T) {
	svc := NewBrowseService(newTestLogger(t))

	var vs []*models.Vehicle
	for i := 1; i <= 10; i++ {
		vs = append(vs, vehicle(i, "car", float64(10+i*3), 1970+i, models.OriginUSA))
	}

	res, err := svc.Browse(vs, models.BrowseQuery{
		Filter:   models.FilterCriteria{MinMPG: floatPtr(20)},
		Sort:     models.SortCriteria{Key: models.SortByMPG, Order: models.Descending},
		Page:     2,
		PageSize: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 7, res.Matched)
	assert.Equal(t, 3, res.Page.TotalPages)
	assert.Equal(t, []int{7, 6, 5}, ids(res.Page.Items))
}

func TestBrowseIsRepeatable(t *testing.T) {
	svc := NewBrowseService(newTestLogger(t))
	vs := filterFixture()
	q := models.BrowseQuery{Sort: models.SortCriteria{Key: models.SortByYear}, Page: 1, PageSize: 4}

	first, err := svc.Browse(vs, q)
	require.NoError(t, err)
	second, err := svc.Browse(vs, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{1, 6, 4, 5}, ids(first.Page.Items))
}

func TestBrowsePropagatesUsageErrors(t *testing.T) {
	svc := NewBrowseService(newTestLogger(t))
	vs := filterFixture()

	_, err := svc.Browse(vs, models.BrowseQuery{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Browse(vs, models.BrowseQuery{Sort: models.SortCriteria{Key: "weight"}, Page: 1, PageSize: 5})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Browse(vs, models.BrowseQuery{Filter: models.FilterCriteria{Efficiency: "meh"}, Page: 1, PageSize: 5})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
