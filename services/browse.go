package services

import (
	"fuel-explorer/models"
	"fuel-explorer/utils"
)

// BrowseService runs the filter → sort → paginate pipeline shared by every
// listing view.
type BrowseService struct {
	logger *utils.Logger
}

// NewBrowseService creates a BrowseService with the given logger.
func NewBrowseService(logger *utils.Logger) *BrowseService {
	return &BrowseService{logger: logger}
}

// Browse filters, orders and slices vehicles according to q.
func (s *BrowseService) Browse(vehicles []*models.Vehicle, q models.BrowseQuery) (*models.BrowseResult, error) {
	matched, err := Filter(vehicles, q.Filter)
	if err != nil {
		return nil, err
	}

	ordered, err := Sort(matched, q.Sort)
	if err != nil {
		return nil, err
	}

	page, err := Paginate(ordered, q.Page, q.PageSize)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[browse] %d of %d vehicles matched; page %d/%d holds %d",
		len(matched), len(vehicles), page.PageIndex, page.TotalPages, len(page.Items))

	return &models.BrowseResult{
		Page:    page,
		Matched: len(matched),
		Total:   len(vehicles),
	}, nil
}
