// internal/core/services/fridge.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// FridgeService orchestrates fridge updates: validate the scanned batch,
// merge it into the stored inventory under the repository's row lock, and
// report the outcome. It borrows inventory values only for the duration of
// one call; the repository is the sole long-lived owner of persisted state.
type FridgeService struct {
	repo     ports.FridgeRepository
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Statically assert that *FridgeService implements the FridgeService port.
var _ ports.FridgeService = (*FridgeService)(nil)

// NewFridgeService creates a new fridge service. cache may be nil, in which
// case reads always hit the repository.
func NewFridgeService(repo ports.FridgeRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *FridgeService {
	return &FridgeService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With(slog.String("service", "fridge")),
	}
}

// InventoryCacheKey returns the cache key holding uid's inventory snapshot.
func InventoryCacheKey(uid string) string {
	return "fridge:" + uid
}

// Update validates batch and merges it into uid's stored inventory.
// Validation failures return before any store access. The read-modify-write
// runs under the repository's per-uid serialization, so concurrent updates
// to the same fridge cannot lose items. On store failure the merged snapshot
// is discarded and the stored value remains the pre-update one.
func (s *FridgeService) Update(ctx context.Context, uid string, batch domain.Batch) (*domain.UpdateReport, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, &domain.ValidationError{Kind: domain.ValidationInvalidName, Item: "uid"}
	}

	validated, err := domain.ValidateBatch(batch)
	if err != nil {
		s.logger.WarnContext(ctx, "batch rejected",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.InfoContext(ctx, "updating fridge",
		slog.String("uid", uid),
		slog.Int("items", len(validated)))

	var merged domain.Inventory
	err = s.repo.UpdateInventory(ctx, uid, func(current domain.Inventory) (domain.Inventory, error) {
		merged = domain.Merge(current, validated)
		return merged, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update fridge for %s: %w", uid, err)
	}

	s.invalidateCache(ctx, uid)

	s.logger.InfoContext(ctx, "fridge updated",
		slog.String("uid", uid),
		slog.Int("items_added", len(validated)),
		slog.Int("inventory_size", len(merged)))

	return &domain.UpdateReport{
		ItemsAdded: len(validated),
		Inventory:  merged,
	}, nil
}

// GetInventory returns uid's stored inventory, serving repeated reads from
// the cache. A missing fridge row is domain.ErrNotFound; an existing row
// with no items is a successful empty map.
func (s *FridgeService) GetInventory(ctx context.Context, uid string) (domain.Inventory, error) {
	if s.cache != nil {
		var cached domain.Inventory
		if err := s.cache.Get(ctx, InventoryCacheKey(uid), &cached); err == nil {
			return cached, nil
		}
	}

	inv, found, err := s.repo.Fetch(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fridge for %s: %w", uid, err)
	}
	if !found {
		return nil, fmt.Errorf("fridge for %s: %w", uid, domain.ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, InventoryCacheKey(uid), inv, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache inventory",
				slog.String("uid", uid),
				slog.String("error", err.Error()))
		}
	}

	return inv, nil
}

// ListFridges returns paginated fridge summaries for the dashboard.
func (s *FridgeService) ListFridges(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list fridges: %w", err)
	}
	return result, nil
}

func (s *FridgeService) invalidateCache(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, InventoryCacheKey(uid)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate inventory cache",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
	}
}
