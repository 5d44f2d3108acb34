package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"fuel-explorer/models"
)

// predicate is FilterCriteria compiled once for repeated evaluation.
type predicate struct {
	criteria models.FilterCriteria

	query      string // case-folded search text
	searchBand models.Band
	isBandTerm bool

	band    models.Band
	hasBand bool
	folder  cases.Caser
}

func compile(c models.FilterCriteria) (*predicate, error) {
	p := &predicate{criteria: c, folder: cases.Fold()}

	if c.Search != "" {
		p.query = p.folder.String(c.Search)
		p.searchBand, p.isBandTerm = models.ParseBand(c.Search)
	}

	switch eff := strings.TrimSpace(c.Efficiency); {
	case eff == "", strings.EqualFold(eff, "all"):
	default:
		b, ok := models.ParseBand(eff)
		if !ok {
			return nil, fmt.Errorf("filter: unknown efficiency %q: %w", c.Efficiency, ErrInvalidArgument)
		}
		p.band, p.hasBand = b, true
	}
	return p, nil
}

func (p *predicate) match(v *models.Vehicle) bool {
	c := p.criteria

	if c.Search != "" {
		nameHit := strings.Contains(p.folder.String(v.Name), p.query)
		bandHit := p.isBandTerm && v.Band() == p.searchBand
		if !nameHit && !bandHit {
			return false
		}
	}

	if c.MinYear != nil && v.ModelYear < *c.MinYear {
		return false
	}
	if c.MaxYear != nil && v.ModelYear > *c.MaxYear {
		return false
	}
	if c.MinMPG != nil && v.MPG < *c.MinMPG {
		return false
	}
	if c.MaxMPG != nil && v.MPG > *c.MaxMPG {
		return false
	}

	if c.Origin != nil && v.Origin != *c.Origin {
		return false
	}
	if c.Cylinders != nil && v.Cylinders != *c.Cylinders {
		return false
	}

	if p.hasBand && v.Band() != p.band {
		return false
	}
	return true
}

// Matches reports whether v satisfies every active constraint in c. An
// unrecognised efficiency value matches nothing.
func Matches(v *models.Vehicle, c models.FilterCriteria) bool {
	p, err := compile(c)
	if err != nil {
		return false
	}
	return p.match(v)
}

// Filter returns the vehicles matching c, in input order, as a new slice.
func Filter(vehicles []*models.Vehicle, c models.FilterCriteria) ([]*models.Vehicle, error) {
	p, err := compile(c)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if p.match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}
