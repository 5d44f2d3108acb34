package models

import (
	"strconv"
	"strings"
)

// Origin enumerates a vehicle's manufacturing region.
type Origin int

const (
	OriginUnknown Origin = 0
	OriginUSA     Origin = 1
	OriginEurope  Origin = 2
	OriginJapan   Origin = 3
)

// Known reports whether o is one of the enumerated regions.
func (o Origin) Known() bool {
	return o >= OriginUSA && o <= OriginJapan
}

// Name returns the display name of the region.
func (o Origin) Name() string {
	switch o {
	case OriginUSA:
		return "USA"
	case OriginEurope:
		return "Europe"
	case OriginJapan:
		return "Japan"
	default:
		return "Unknown"
	}
}

// ParseOrigin accepts either a numeric code or a region name.
func ParseOrigin(s string) (Origin, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		o := Origin(n)
		return o, o.Known()
	}
	for _, o := range []Origin{OriginUSA, OriginEurope, OriginJapan} {
		if strings.EqualFold(o.Name(), strings.TrimSpace(s)) {
			return o, true
		}
	}
	return OriginUnknown, false
}
