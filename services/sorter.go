package services

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fuel-explorer/models"
)

// Comparator orders vehicles by one SortCriteria. It holds a collator and is
// not safe for concurrent use.
type Comparator struct {
	key      models.SortKey
	desc     bool
	collator *collate.Collator
}

// NewComparator validates c. An empty key sorts by name and an empty order
// sorts ascending.
func NewComparator(c models.SortCriteria) (*Comparator, error) {
	key := c.Key
	if key == "" {
		key = models.SortByName
	}
	switch key {
	case models.SortByName, models.SortByMPG, models.SortByYear:
	default:
		return nil, fmt.Errorf("sort: unknown key %q: %w", c.Key, ErrInvalidArgument)
	}

	var desc bool
	switch c.Order {
	case "", models.Ascending:
	case models.Descending:
		desc = true
	default:
		return nil, fmt.Errorf("sort: unknown order %q: %w", c.Order, ErrInvalidArgument)
	}

	return &Comparator{
		key:      key,
		desc:     desc,
		collator: collate.New(language.English),
	}, nil
}

// Compare returns -1, 0 or 1.
func (c *Comparator) Compare(a, b *models.Vehicle) int {
	var r int
	switch c.key {
	case models.SortByMPG:
		r = cmp.Compare(a.MPG, b.MPG)
	case models.SortByYear:
		r = cmp.Compare(a.ModelYear, b.ModelYear)
	default:
		r = c.collator.CompareString(a.Name, b.Name)
	}
	if c.desc {
		return -r
	}
	return r
}

// Sort returns a stably sorted copy of vehicles. Equal keys keep their input
// order in both directions.
func Sort(vehicles []*models.Vehicle, c models.SortCriteria) ([]*models.Vehicle, error) {
	cmpr, err := NewComparator(c)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(vehicles)
	slices.SortStableFunc(out, cmpr.Compare)
	return out, nil
}
