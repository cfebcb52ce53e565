package ledger

import (
	"context"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// EntryRepository defines persistence operations for journal entries
type EntryRepository interface {
	// Create persists new entries
	Create(ctx context.Context, entries ...*Entry) error

	// FindByID retrieves an entry by its ID
	FindByID(ctx context.Context, id EntryID) (*Entry, error)

	// FindByEntity retrieves entries recorded by an entity with optional filtering
	FindByEntity(ctx context.Context, entityID shared.EntityID, opts QueryOptions) ([]*Entry, error)

	// CountByEntity returns the count of entries matching the criteria
	CountByEntity(ctx context.Context, entityID shared.EntityID, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for entry queries
type QueryOptions struct {
	// Date range filtering (inclusive)
	FromDate *shared.StarDate
	ToDate   *shared.StarDate

	Good      *goods.GoodID
	Direction *FlowDirection

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy string // "star_date ASC" or "star_date DESC" (default DESC)
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "star_date DESC",
	}
}
