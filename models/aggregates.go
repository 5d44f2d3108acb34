package models

// HistogramBin is one bucket of a histogram. Lower is inclusive; Upper is
// exclusive except on the last bin.
type HistogramBin struct {
	Lower   float64    `json:"x0"`
	Upper   float64    `json:"x1"`
	Count   int        `json:"count"`
	Members []*Vehicle `json:"-"`
}

// GroupAggregate is a rollup of one value over the records sharing a key.
type GroupAggregate struct {
	Key     string     `json:"key"`
	Count   int        `json:"count"`
	Mean    float64    `json:"mean"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Best    *Vehicle   `json:"best,omitempty"`
	Members []*Vehicle `json:"-"`
}

// YearAggregate is a GroupAggregate keyed by model year.
type YearAggregate struct {
	Year    int        `json:"year"`
	Count   int        `json:"count"`
	Mean    float64    `json:"mean"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Best    *Vehicle   `json:"best,omitempty"`
	Members []*Vehicle `json:"-"`
}

// BoxPlotStats summarises the distribution of one group for a box plot.
type BoxPlotStats struct {
	Key         string     `json:"key"`
	Count       int        `json:"count"`
	Q1          float64    `json:"q1"`
	Median      float64    `json:"median"`
	Q3          float64    `json:"q3"`
	IQR         float64    `json:"iqr"`
	LowerFence  float64    `json:"lowerFence"`
	UpperFence  float64    `json:"upperFence"`
	WhiskerLow  float64    `json:"whiskerLow"`
	WhiskerHigh float64    `json:"whiskerHigh"`
	Outliers    []float64  `json:"outliers"`
	OutlierRecs []*Vehicle `json:"-"`
}

// ChartSet carries every chart series computed for one dataset.
type ChartSet struct {
	Histogram []HistogramBin   `json:"histogram"`
	Groups    []GroupAggregate `json:"groups"`
	Years     []YearAggregate  `json:"years"`
	BoxPlots  []BoxPlotStats   `json:"boxPlots"`
}
