package services

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"fuel-explorer/models"
	"fuel-explorer/utils"
)

const topPerformerCount = 5

// InsightService builds the dashboard summary and chart series for a dataset.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds the dashboard summary for a normalized batch.
func (s *InsightService) Generate(res *models.NormalizeResult) *models.InsightReport {
	report := &models.InsightReport{
		BandCounts:     make(map[models.Band]int),
		OriginCounts:   make(map[models.Origin]int),
		CylinderCounts: make(map[int]int),
	}
	if res == nil {
		return report
	}

	report.ExcludedCount = len(res.Excluded)
	vehicles := res.Vehicles
	if len(vehicles) == 0 {
		return report
	}
	report.TotalVehicles = len(vehicles)

	mpgs := make([]float64, 0, len(vehicles))
	weights := make([]float64, 0, len(vehicles))
	var horsepowers []float64

	report.MinYear, report.MaxYear = vehicles[0].ModelYear, vehicles[0].ModelYear
	for _, v := range vehicles {
		report.BandCounts[v.Band()]++
		report.OriginCounts[v.Origin]++
		report.CylinderCounts[v.Cylinders]++

		mpgs = append(mpgs, v.MPG)
		weights = append(weights, v.Weight)
		// Missing horsepower stays out of the average.
		if hp, ok := FieldHorsepower.Value(v); ok {
			horsepowers = append(horsepowers, hp)
		}

		report.MinYear = min(report.MinYear, v.ModelYear)
		report.MaxYear = max(report.MaxYear, v.ModelYear)
	}

	avg, _ := stats.Mean(mpgs)
	lo, _ := stats.Min(mpgs)
	hi, _ := stats.Max(mpgs)
	report.AverageMPG = round2(avg)
	report.MinMPG = round2(lo)
	report.MaxMPG = round2(hi)

	if len(horsepowers) > 0 {
		hp, _ := stats.Mean(horsepowers)
		report.AvgHorsepower = round2(hp)
	}
	w, _ := stats.Mean(weights)
	report.AvgWeight = round2(w)

	top := slices.Clone(vehicles)
	slices.SortStableFunc(top, func(a, b *models.Vehicle) int { return cmp.Compare(b.MPG, a.MPG) })
	if len(top) > topPerformerCount {
		top = top[:topPerformerCount]
	}
	report.TopPerformers = top

	s.logger.Debug("[insights] Report over %d vehicles (%d excluded)", report.TotalVehicles, report.ExcludedCount)
	return report
}

// ChartOptions selects what Charts aggregates.
type ChartOptions struct {
	Field Field
	Group GroupKey
	Bins  int
	// TopGroups trims the group rollup to the best N by mean; 0 keeps all.
	TopGroups int
}

// Charts computes every chart series concurrently. The returned set is only
// assembled after all series finish, so callers never see a partial result.
func (s *InsightService) Charts(ctx context.Context, vehicles []*models.Vehicle, opts ChartOptions) (*models.ChartSet, error) {
	if opts.Field.Value == nil || opts.Group.Of == nil {
		return nil, fmt.Errorf("charts: field and group are required: %w", ErrInvalidArgument)
	}

	var (
		hist   []models.HistogramBin
		groups []models.GroupAggregate
		years  []models.YearAggregate
		boxes  []models.BoxPlotStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hist, err = Histogram(vehicles, opts.Field, opts.Bins)
		return err
	})
	g.Go(func() error {
		groups = GroupRollup(vehicles, opts.Group, opts.Field)
		if opts.TopGroups > 0 {
			groups = TopByMean(groups, opts.TopGroups)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		years = YearSeries(vehicles, opts.Field)
		return ctx.Err()
	})
	g.Go(func() error {
		boxes = BoxPlot(vehicles, opts.Group, opts.Field)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("[insights] Charts for %s by %s: %d bins, %d groups, %d years",
		opts.Field.Name, opts.Group.Name, len(hist), len(groups), len(years))

	return &models.ChartSet{
		Histogram: hist,
		Groups:    groups,
		Years:     years,
		BoxPlots:  boxes,
	}, nil
}

// Print renders r as a colored console report.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  ⛽ FUEL ECONOMY INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Vehicles           : \033[1m%d\033[0m\n", r.TotalVehicles)
	fmt.Fprintf(w, "  Excluded records   : \033[1m%d\033[0m\n", r.ExcludedCount)
	if r.TotalVehicles > 0 {
		fmt.Fprintf(w, "  Model years        : \033[1m%d–%d\033[0m\n", r.MinYear, r.MaxYear)
	}
	fmt.Fprintln(w)

	// MPG Stats
	fmt.Fprintf(w, "\033[1;33m  Fuel Economy\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.TotalVehicles > 0 {
		fmt.Fprintf(w, "  Average MPG        : \033[1;32m%.2f\033[0m\n", r.AverageMPG)
		fmt.Fprintf(w, "  Minimum MPG        : \033[1;32m%.2f\033[0m\n", r.MinMPG)
		fmt.Fprintf(w, "  Maximum MPG        : \033[1;32m%.2f\033[0m\n", r.MaxMPG)
		fmt.Fprintf(w, "  Average horsepower : %.2f\n", r.AvgHorsepower)
		fmt.Fprintf(w, "  Average weight     : %.2f lbs\n", r.AvgWeight)
	} else {
		fmt.Fprintf(w, "  No vehicle data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Efficiency Bands\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, b := range models.Bands {
		n := r.BandCounts[b]
		fmt.Fprintf(w, "  %-12s %s (%d)\n", b, strings.Repeat("█", scaleBar(n, r.TotalVehicles)), n)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d Most Efficient\033[0m\n", topPerformerCount)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopPerformers) == 0 {
		fmt.Fprintf(w, "  No vehicles found\n")
	} else {
		for i, v := range r.TopPerformers {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-36s %d \033[1;32m%.1f MPG\033[0m\n",
				i+1, truncate(v.Name, 34), v.ModelYear, v.MPG)
		}
	}
	fmt.Fprintln(w)

	// Origins, sorted by count descending
	fmt.Fprintf(w, "\033[1;33m  Vehicles by Origin\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	type originCount struct {
		origin models.Origin
		count  int
	}
	var origins []originCount
	for o, n := range r.OriginCounts {
		origins = append(origins, originCount{o, n})
	}
	slices.SortFunc(origins, func(a, b originCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.origin, b.origin)
	})
	for _, oc := range origins {
		fmt.Fprintf(w, "  %-12s %s (%d)\n", oc.origin.Name(), strings.Repeat("█", scaleBar(oc.count, r.TotalVehicles)), oc.count)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// scaleBar maps n out of total onto a bar of at most 30 cells.
func scaleBar(n, total int) int {
	if total == 0 || n == 0 {
		return 0
	}
	return max(1, n*30/total)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
