package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fuel-explorer/models"
)

// filterFlags binds the FilterCriteria and SortCriteria fields to flags. Bounds
// are only applied when the flag was given.
type filterFlags struct {
	search     string
	minYear    int
	maxYear    int
	minMPG     float64
	maxMPG     float64
	origin     string
	cylinders  int
	efficiency string
	sortBy     string
	order      string
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.search, "search", "s", "", "name substring or efficiency label")
	fs.IntVar(&f.minYear, "min-year", 0, "earliest model year")
	fs.IntVar(&f.maxYear, "max-year", 0, "latest model year")
	fs.Float64Var(&f.minMPG, "min-mpg", 0, "lowest MPG")
	fs.Float64Var(&f.maxMPG, "max-mpg", 0, "highest MPG")
	fs.StringVar(&f.origin, "origin", "", "USA, Europe, Japan or 1-3")
	fs.IntVar(&f.cylinders, "cylinders", 0, "exact cylinder count")
	fs.StringVar(&f.efficiency, "efficiency", "", "excellent, good, fair, poor or all")
	fs.StringVar(&f.sortBy, "sort", string(models.SortByName), "name, mpg or year")
	fs.StringVar(&f.order, "order", string(models.Ascending), "asc or desc")
}

func (f *filterFlags) criteria(cmd *cobra.Command) (models.FilterCriteria, error) {
	fs := cmd.Flags()
	c := models.FilterCriteria{Search: f.search, Efficiency: f.efficiency}

	if fs.Changed("min-year") {
		c.MinYear = &f.minYear
	}
	if fs.Changed("max-year") {
		c.MaxYear = &f.maxYear
	}
	if fs.Changed("min-mpg") {
		c.MinMPG = &f.minMPG
	}
	if fs.Changed("max-mpg") {
		c.MaxMPG = &f.maxMPG
	}
	if fs.Changed("cylinders") {
		c.Cylinders = &f.cylinders
	}
	if fs.Changed("origin") {
		o, ok := models.ParseOrigin(f.origin)
		if !ok {
			return c, fmt.Errorf("unknown origin %q", f.origin)
		}
		c.Origin = &o
	}
	return c, nil
}

func (f *filterFlags) sort() models.SortCriteria {
	return models.SortCriteria{Key: models.SortKey(f.sortBy), Order: models.SortOrder(f.order)}
}
