// internal/adapters/db/fridge_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// fridgeRepository implements ports.FridgeRepository on a single
// fridges table holding one JSONB inventory document per uid.
type fridgeRepository struct {
	db     *Database
	logger *slog.Logger
	sq     squirrel.StatementBuilderType
}

// NewFridgeRepository creates a new fridge repository
func NewFridgeRepository(db *Database, logger *slog.Logger) ports.FridgeRepository {
	return &fridgeRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "fridge")),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Fetch returns the inventory stored for uid. found is false when no row
// exists, which is distinct from a row holding an empty inventory.
func (r *fridgeRepository) Fetch(ctx context.Context, uid string) (domain.Inventory, bool, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT inventory FROM fridges WHERE uid = $1`, uid).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: fetch fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
	}

	inv, err := domain.DecodeInventory(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode inventory for %s: %w", uid, err)
	}
	return inv, true, nil
}

// CreateIfAbsent inserts an empty fridge row for uid. Existing rows are
// left untouched.
func (r *fridgeRepository) CreateIfAbsent(ctx context.Context, uid string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO fridges (uid) VALUES ($1) ON CONFLICT (uid) DO NOTHING`, uid)
	if err != nil {
		return fmt.Errorf("%w: create fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
	}
	return nil
}

// Replace overwrites the stored inventory for uid.
func (r *fridgeRepository) Replace(ctx context.Context, uid string, inv domain.Inventory) error {
	data, err := inv.Encode()
	if err != nil {
		return fmt.Errorf("encode inventory for %s: %w", uid, err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE fridges SET inventory = $2, updated_at = now() WHERE uid = $1`,
		uid, data)
	if err != nil {
		return fmt.Errorf("%w: replace fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("replace fridge %s: %w", uid, domain.ErrNotFound)
	}
	return nil
}

// UpdateInventory runs a read-modify-write cycle for uid inside one
// transaction. The row is locked with SELECT ... FOR UPDATE so concurrent
// updates to the same fridge serialize instead of overwriting each other.
// If apply fails the transaction rolls back and the row keeps its previous
// value.
func (r *fridgeRepository) UpdateInventory(ctx context.Context, uid string, apply func(domain.Inventory) (domain.Inventory, error)) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO fridges (uid) VALUES ($1) ON CONFLICT (uid) DO NOTHING`, uid); err != nil {
			return fmt.Errorf("%w: create fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
		}

		var raw []byte
		if err := tx.QueryRow(ctx,
			`SELECT inventory FROM fridges WHERE uid = $1 FOR UPDATE`, uid).Scan(&raw); err != nil {
			return fmt.Errorf("%w: lock fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
		}

		current, err := domain.DecodeInventory(raw)
		if err != nil {
			return fmt.Errorf("decode inventory for %s: %w", uid, err)
		}

		next, err := apply(current)
		if err != nil {
			return err
		}

		data, err := next.Encode()
		if err != nil {
			return fmt.Errorf("encode inventory for %s: %w", uid, err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE fridges SET inventory = $2, updated_at = now() WHERE uid = $1`,
			uid, data); err != nil {
			return fmt.Errorf("%w: replace fridge %s: %v", domain.ErrStoreUnavailable, uid, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "fridge inventory updated", slog.String("uid", uid))
	return nil
}

// List returns paginated fridge summaries ordered by uid.
func (r *fridgeRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	offset := (params.Page - 1) * params.PageSize

	query, args, err := r.sq.
		Select("uid", "inventory", "updated_at").
		From("fridges").
		OrderBy("uid ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list fridges: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	result := &ports.ListResult{
		Fridges:  make([]ports.FridgeSummary, 0, params.PageSize),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	for rows.Next() {
		var (
			uid       string
			raw       []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&uid, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fridge row: %w", err)
		}

		inv, err := domain.DecodeInventory(raw)
		if err != nil {
			return nil, fmt.Errorf("decode inventory for %s: %w", uid, err)
		}

		result.Fridges = append(result.Fridges, ports.FridgeSummary{
			UID:        uid,
			ItemCount:  len(inv),
			TotalValue: inv.TotalValue(),
			UpdatedAt:  updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list fridges: %v", domain.ErrStoreUnavailable, err)
	}

	countQuery, countArgs, err := r.sq.Select("COUNT(*)").From("fridges").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&result.TotalCount); err != nil {
		return nil, fmt.Errorf("%w: count fridges: %v", domain.ErrStoreUnavailable, err)
	}

	return result, nil
}
