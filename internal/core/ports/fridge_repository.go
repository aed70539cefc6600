// internal/core/ports/fridge_repository.go
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/fridge-be/internal/core/domain"
)

// FridgeRepository is the persistence port for the one-row-per-user fridge
// store. Every method runs inside its own transaction: acquire, act,
// commit-or-rollback, release on every exit path.
type FridgeRepository interface {
	// Fetch returns the stored inventory for uid. found is false when no row
	// exists; an existing row with no items yields an empty, non-nil map.
	Fetch(ctx context.Context, uid string) (inv domain.Inventory, found bool, err error)

	// CreateIfAbsent inserts an empty fridge row for uid. It is idempotent:
	// an existing row is a silent success.
	CreateIfAbsent(ctx context.Context, uid string) error

	// Replace overwrites the entire stored inventory for uid. The write is
	// all-or-nothing; on failure the prior value remains intact.
	Replace(ctx context.Context, uid string, inv domain.Inventory) error

	// UpdateInventory runs a read-modify-write for uid under a row-level lock,
	// creating the row first if absent. Concurrent calls for the same uid are
	// serialized; an error from apply rolls the transaction back untouched.
	UpdateInventory(ctx context.Context, uid string, apply func(domain.Inventory) (domain.Inventory, error)) error

	// List returns paginated fridge summaries for the dashboard.
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// ListParams holds pagination for listing fridges.
type ListParams struct {
	Page     int
	PageSize int
}

// FridgeSummary is one dashboard row.
type FridgeSummary struct {
	UID        string          `json:"uid"`
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ListResult holds one page of fridge summaries.
type ListResult struct {
	Fridges    []FridgeSummary `json:"fridges"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int64           `json:"total_count"`
}
