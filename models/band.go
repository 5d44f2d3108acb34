package models

import "strings"

// Band is an efficiency band derived from MPG.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Band lower bounds. A value equal to a bound belongs to the higher band.
const (
	ExcellentMinMPG = 30.0
	GoodMinMPG      = 25.0
	FairMinMPG      = 20.0
)

// Bands lists every band from most to least efficient.
var Bands = []Band{BandExcellent, BandGood, BandFair, BandPoor}

// BandFor maps an MPG value onto its efficiency band.
func BandFor(mpg float64) Band {
	switch {
	case mpg >= ExcellentMinMPG:
		return BandExcellent
	case mpg >= GoodMinMPG:
		return BandGood
	case mpg >= FairMinMPG:
		return BandFair
	default:
		return BandPoor
	}
}

// ParseBand resolves a band label case-insensitively. "average" is accepted as
// an alias for fair.
func ParseBand(s string) (Band, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excellent":
		return BandExcellent, true
	case "good":
		return BandGood, true
	case "fair", "average":
		return BandFair, true
	case "poor":
		return BandPoor, true
	}
	return "", false
}
