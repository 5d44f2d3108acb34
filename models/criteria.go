package models

// FilterCriteria describes which vehicles a browse request keeps. Nil bounds
// and empty strings impose no constraint.
type FilterCriteria struct {
	Search     string   `json:"search,omitempty"`
	MinYear    *int     `json:"minYear,omitempty"`
	MaxYear    *int     `json:"maxYear,omitempty"`
	MinMPG     *float64 `json:"minMpg,omitempty"`
	MaxMPG     *float64 `json:"maxMpg,omitempty"`
	Origin     *Origin  `json:"origin,omitempty"`
	Cylinders  *int     `json:"cylinders,omitempty"`
	Efficiency string   `json:"efficiency,omitempty"` // a band label, "all" or ""
}

// SortKey selects the field vehicles are ordered by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByMPG  SortKey = "mpg"
	SortByYear SortKey = "year"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortCriteria pairs a sort key with a direction.
type SortCriteria struct {
	Key   SortKey   `json:"sortBy"`
	Order SortOrder `json:"sortOrder"`
}

// Page is one fixed-size slice of an ordered collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageIndex  int `json:"page"`
	PageSize   int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// BrowseQuery bundles everything the browse pipeline needs.
type BrowseQuery struct {
	Filter   FilterCriteria
	Sort     SortCriteria
	Page     int
	PageSize int
}

// BrowseResult is a rendered page plus the counts shown next to it.
type BrowseResult struct {
	Page    Page[*Vehicle] `json:"page"`
	Matched int            `json:"matched"`
	Total   int            `json:"total"`
}
