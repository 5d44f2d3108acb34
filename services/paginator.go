package services

import (
	"fmt"
	"slices"

	"fuel-explorer/models"
)

// Paginate returns page pageIndex (1-based) of items. Pages past the end are
// empty; clamping is left to the caller.
func Paginate[T any](items []T, pageIndex, pageSize int) (models.Page[T], error) {
	if pageSize <= 0 {
		return models.Page[T]{}, fmt.Errorf("paginate: page size %d: %w", pageSize, ErrInvalidArgument)
	}
	if pageIndex < 1 {
		return models.Page[T]{}, fmt.Errorf("paginate: page index %d: %w", pageIndex, ErrInvalidArgument)
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	page := models.Page[T]{
		Items:      []T{},
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	// Checked before multiplying so huge indexes cannot overflow the offset.
	if pageIndex > totalPages {
		return page, nil
	}
	start := (pageIndex - 1) * pageSize
	end := start + min(pageSize, total-start)
	page.Items = slices.Clone(items[start:end])
	return page, nil
}
