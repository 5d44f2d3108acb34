package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"fuel-explorer/models"
)

const (
	// DefaultHistogramBins is used when a caller passes a bin count of zero.
	DefaultHistogramBins = 15
	// degenerateSpread widens an all-equal domain on both sides.
	degenerateSpread = 5.0
	tukeyK           = 1.5
)

type point struct {
	value float64
	rec   *models.Vehicle
}

// collect keeps the vehicles with a usable value for field, in input order.
func collect(vehicles []*models.Vehicle, field Field) []point {
	pts := make([]point, 0, len(vehicles))
	for _, v := range vehicles {
		if x, ok := field.Value(v); ok {
			pts = append(pts, point{value: x, rec: v})
		}
	}
	return pts
}

func values(pts []point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.value
	}
	return out
}

// ============================================================================
// HISTOGRAM
// ============================================================================

// Histogram buckets the usable values of field into binCount uniform bins
// spanning [min, max]. A binCount of zero selects DefaultHistogramBins. If
// every value is equal the domain is widened by ±5 first. No usable values
// yields no bins.
func Histogram(vehicles []*models.Vehicle, field Field, binCount int) ([]models.HistogramBin, error) {
	if binCount < 0 {
		return nil, fmt.Errorf("histogram: bin count %d: %w", binCount, ErrInvalidArgument)
	}
	if binCount == 0 {
		binCount = DefaultHistogramBins
	}

	pts := collect(vehicles, field)
	if len(pts) == 0 {
		return nil, nil
	}

	xs := values(pts)
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo -= degenerateSpread
		hi += degenerateSpread
	}
	width := (hi - lo) / float64(binCount)

	bins := make([]models.HistogramBin, binCount)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[binCount-1].Upper = hi

	for _, p := range pts {
		i := binIndex(bins, p.value, lo, width)
		bins[i].Count++
		bins[i].Members = append(bins[i].Members, p.rec)
	}
	return bins, nil
}

// binIndex places x so that bins[i].Lower <= x < bins[i].Upper, with the last
// bin closed on the right.
func binIndex(bins []models.HistogramBin, x, lo, width float64) int {
	last := len(bins) - 1
	i := int(math.Floor((x - lo) / width))
	i = max(0, min(i, last))

	// Floating point can land one bin off near an edge.
	if i > 0 && x < bins[i].Lower {
		i--
	}
	if i < last && x >= bins[i].Upper {
		i++
	}
	return i
}

// ============================================================================
// ROLLUPS
// ============================================================================

type groupAcc struct {
	key     string
	values  []float64
	members []*models.Vehicle
	best    *models.Vehicle
	bestVal float64
}

func groupPoints(pts []point, keyOf func(*models.Vehicle) string) []*groupAcc {
	index := make(map[string]*groupAcc)
	order := make([]*groupAcc, 0)

	for _, p := range pts {
		k := keyOf(p.rec)
		g, ok := index[k]
		if !ok {
			g = &groupAcc{key: k}
			index[k] = g
			order = append(order, g)
		}
		g.values = append(g.values, p.value)
		g.members = append(g.members, p.rec)
		if g.best == nil || p.value > g.bestVal {
			g.best, g.bestVal = p.rec, p.value
		}
	}
	return order
}

// GroupRollup computes count, mean, min, max and the best record of value per
// key. Vehicles without a usable value are left out entirely. Groups come back
// in order of first occurrence.
func GroupRollup(vehicles []*models.Vehicle, key GroupKey, value Field) []models.GroupAggregate {
	groups := groupPoints(collect(vehicles, value), key.Of)

	out := make([]models.GroupAggregate, 0, len(groups))
	for _, g := range groups {
		mean, _ := stats.Mean(g.values)
		lo, _ := stats.Min(g.values)
		hi, _ := stats.Max(g.values)
		out = append(out, models.GroupAggregate{
			Key:     g.key,
			Count:   len(g.values),
			Mean:    mean,
			Min:     lo,
			Max:     hi,
			Best:    g.best,
			Members: g.members,
		})
	}
	return out
}

// TopByMean returns up to n groups ordered by mean descending. Ties keep
// rollup order. n <= 0 returns every group.
func TopByMean(groups []models.GroupAggregate, n int) []models.GroupAggregate {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b models.GroupAggregate) int {
		return cmp.Compare(b.Mean, a.Mean)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// YearSeries is a rollup keyed by model year, sorted by ascending year.
func YearSeries(vehicles []*models.Vehicle, value Field) []models.YearAggregate {
	pts := collect(vehicles, value)

	byYear := make(map[int][]point)
	for _, p := range pts {
		byYear[p.rec.ModelYear] = append(byYear[p.rec.ModelYear], p)
	}

	out := make([]models.YearAggregate, 0, len(byYear))
	for year, yp := range byYear {
		group := groupPoints(yp, func(*models.Vehicle) string { return "" })[0]
		mean, _ := stats.Mean(group.values)
		lo, _ := stats.Min(group.values)
		hi, _ := stats.Max(group.values)
		out = append(out, models.YearAggregate{
			Year:    year,
			Count:   len(group.values),
			Mean:    mean,
			Min:     lo,
			Max:     hi,
			Best:    group.best,
			Members: group.members,
		})
	}
	slices.SortFunc(out, func(a, b models.YearAggregate) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// ============================================================================
// BOX PLOT
// ============================================================================

// BoxPlot computes quartiles, Tukey fences, whiskers and outliers of value per
// key, in order of first occurrence.
func BoxPlot(vehicles []*models.Vehicle, key GroupKey, value Field) []models.BoxPlotStats {
	groups := groupPoints(collect(vehicles, value), key.Of)

	out := make([]models.BoxPlotStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, boxStats(g))
	}
	return out
}

func boxStats(g *groupAcc) models.BoxPlotStats {
	pts := make([]point, len(g.values))
	for i := range g.values {
		pts[i] = point{value: g.values[i], rec: g.members[i]}
	}
	slices.SortStableFunc(pts, func(a, b point) int { return cmp.Compare(a.value, b.value) })
	sorted := values(pts)

	q1 := Quantile(sorted, 0.25)
	med := Quantile(sorted, 0.5)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1

	s := models.BoxPlotStats{
		Key:        g.key,
		Count:      len(sorted),
		Q1:         q1,
		Median:     med,
		Q3:         q3,
		IQR:        iqr,
		LowerFence: q1 - tukeyK*iqr,
		UpperFence: q3 + tukeyK*iqr,
		Outliers:   []float64{},
	}

	inliers := make([]float64, 0, len(sorted))
	for _, p := range pts {
		if p.value < s.LowerFence || p.value > s.UpperFence {
			s.Outliers = append(s.Outliers, p.value)
			s.OutlierRecs = append(s.OutlierRecs, p.rec)
			continue
		}
		inliers = append(inliers, p.value)
	}

	if len(inliers) > 0 {
		s.WhiskerLow, s.WhiskerHigh = floats.Min(inliers), floats.Max(inliers)
	} else {
		s.WhiskerLow, s.WhiskerHigh = q1, q3
	}
	return s
}

// Quantile estimates the p-quantile of ascending-sorted xs by linear
// interpolation between closest ranks, h = (n-1)p. Empty input gives NaN.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 || n == 1 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := min(lo+1, n-1)
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
