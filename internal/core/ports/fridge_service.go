// internal/core/ports/fridge_service.go
package ports

import (
	"context"

	"github.com/ammerola/fridge-be/internal/core/domain"
)

// FridgeService is the application port composing validation, merge and
// persistence. This interface is implemented by the application service.
type FridgeService interface {
	// Update validates batch and merges it into uid's fridge. Validation
	// failures return a *domain.ValidationError before any store access;
	// store failures wrap domain.ErrStoreUnavailable and leave the stored
	// inventory untouched.
	Update(ctx context.Context, uid string, batch domain.Batch) (*domain.UpdateReport, error)

	// GetInventory returns the stored inventory for uid, or an error wrapping
	// domain.ErrNotFound when no fridge row exists. An empty fridge is a
	// successful empty map.
	GetInventory(ctx context.Context, uid string) (domain.Inventory, error)

	// ListFridges returns paginated dashboard summaries.
	ListFridges(ctx context.Context, params ListParams) (*ListResult, error)
}
