package models

// InsightReport holds the dashboard summary computed over a dataset.
type InsightReport struct {
	TotalVehicles  int
	ExcludedCount  int
	AverageMPG     float64
	MinMPG         float64
	MaxMPG         float64
	MinYear        int
	MaxYear        int
	AvgHorsepower  float64
	AvgWeight      float64
	BandCounts     map[Band]int
	OriginCounts   map[Origin]int
	CylinderCounts map[int]int
	TopPerformers  []*Vehicle
}
