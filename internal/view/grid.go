// Package view builds the per-request page state for the site: list grids
// with their loading and placeholder states, the portfolio filter, modals
// and the prompt editor.
package view

import (
	"context"
	"log"
)

// Status is the lifecycle state of a grid.
type Status int

const (
	StatusLoading Status = iota
	StatusEmpty
	StatusError
	StatusItems
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	case StatusItems:
		return "items"
	default:
		return "unknown"
	}
}

// Placeholders holds the literal text a grid shows instead of items.
type Placeholders struct {
	Empty string
	Error string
}

// Grid is one rendered collection. Placeholder is set for the empty and
// error states and Items only for the items state.
type Grid[T any] struct {
	Status      Status
	Items       []T
	Placeholder string
}

// HasItems reports whether the grid renders item fragments.
func (g Grid[T]) HasItems() bool {
	return g.Status == StatusItems
}

// Loading returns a grid in the loading state.
func Loading[T any]() Grid[T] {
	return Grid[T]{Status: StatusLoading}
}

// loadGrid fetches a collection and shapes it into a grid. Failures are
// logged and rendered as the error placeholder; they never propagate. The
// raw records are returned alongside for lookups by id.
func loadGrid[R, T any](ctx context.Context, logger *log.Logger, what string, ph Placeholders,
	fetch func(context.Context) ([]R, error), shape func(R) T) ([]R, Grid[T]) {

	records, err := fetch(ctx)
	if err != nil {
		logger.Printf("Error loading %s: %v", what, err)
		return nil, Grid[T]{Status: StatusError, Placeholder: ph.Error}
	}
	if len(records) == 0 {
		return records, Grid[T]{Status: StatusEmpty, Placeholder: ph.Empty}
	}

	items := make([]T, 0, len(records))
	for _, r := range records {
		items = append(items, shape(r))
	}
	return records, Grid[T]{Status: StatusItems, Items: items}
}
