package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/fridge-be/internal/core/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func item(t *testing.T, quantity, unitPrice string) domain.Item {
	t.Helper()
	return domain.Item{Quantity: dec(t, quantity), UnitPrice: dec(t, unitPrice)}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		current domain.Inventory
		batch   domain.ValidatedBatch
		want    domain.Inventory
	}{
		{
			name:    "new_item_into_empty_fridge",
			current: domain.Inventory{},
			batch:   domain.ValidatedBatch{"milk": item(t, "2", "3.00")},
			want:    domain.Inventory{"milk": item(t, "2", "3.00")},
		},
		{
			name:    "new_item_price_rounded_on_insert",
			current: domain.Inventory{},
			batch:   domain.ValidatedBatch{"figs": item(t, "1", "2.999")},
			want:    domain.Inventory{"figs": item(t, "1", "3.00")},
		},
		{
			name:    "weighted_average_on_collision",
			current: domain.Inventory{"milk": item(t, "2", "3.00")},
			batch:   domain.ValidatedBatch{"milk": item(t, "2", "5.00")},
			want:    domain.Inventory{"milk": item(t, "4", "4.00")},
		},
		{
			name:    "rounding_stability",
			current: domain.Inventory{"eggs": item(t, "3", "1.00")},
			batch:   domain.ValidatedBatch{"eggs": item(t, "1", "1.015")},
			// (3*1.00 + 1*1.015) / 4 = 1.00375 -> 1.00
			want: domain.Inventory{"eggs": item(t, "4", "1.00")},
		},
		{
			name:    "existing_entries_carried_over_unchanged",
			current: domain.Inventory{"butter": item(t, "1", "4.50")},
			batch:   domain.ValidatedBatch{"milk": item(t, "2", "3.00")},
			want: domain.Inventory{
				"butter": item(t, "1", "4.50"),
				"milk":   item(t, "2", "3.00"),
			},
		},
		{
			name:    "fractional_quantities",
			current: domain.Inventory{"salmon": item(t, "0.5", "10.00")},
			batch:   domain.ValidatedBatch{"salmon": item(t, "0.25", "16.00")},
			// (0.5*10 + 0.25*16) / 0.75 = 12.00
			want: domain.Inventory{"salmon": item(t, "0.75", "12.00")},
		},
		{
			name:    "free_items_keep_zero_price",
			current: domain.Inventory{},
			batch:   domain.ValidatedBatch{"sample": item(t, "1", "0")},
			want:    domain.Inventory{"sample": item(t, "1", "0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Merge(tt.current, tt.batch)

			require.Len(t, got, len(tt.want))
			for name, want := range tt.want {
				gotItem, ok := got[name]
				require.True(t, ok, "missing item %q", name)
				assert.True(t, want.Quantity.Equal(gotItem.Quantity),
					"%s quantity: want %s got %s", name, want.Quantity, gotItem.Quantity)
				assert.True(t, want.UnitPrice.Equal(gotItem.UnitPrice),
					"%s unit_price: want %s got %s", name, want.UnitPrice, gotItem.UnitPrice)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	current := domain.Inventory{"milk": item(t, "2", "3.00")}
	batch := domain.ValidatedBatch{"milk": item(t, "2", "5.00")}

	_ = domain.Merge(current, batch)

	assert.True(t, current["milk"].Quantity.Equal(dec(t, "2")))
	assert.True(t, current["milk"].UnitPrice.Equal(dec(t, "3.00")))
	assert.True(t, batch["milk"].UnitPrice.Equal(dec(t, "5.00")))
}

func TestMerge_ConservesTotalValueBeforeRounding(t *testing.T) {
	current := domain.Inventory{"rice": item(t, "4", "2.25")}
	batch := domain.ValidatedBatch{"rice": item(t, "6", "1.75")}

	got := domain.Merge(current, batch)

	// 4*2.25 + 6*1.75 = 19.50 over 10 units -> 1.95 exactly, no rounding loss.
	assert.True(t, got["rice"].Quantity.Equal(dec(t, "10")))
	assert.True(t, got["rice"].UnitPrice.Equal(dec(t, "1.95")))
	assert.True(t, got.TotalValue().Equal(dec(t, "19.50")))
}

func TestDecodeInventory(t *testing.T) {
	t.Run("round_trips_stored_row", func(t *testing.T) {
		inv, err := domain.DecodeInventory([]byte(`{"milk":{"quantity":2,"unit_price":3.5}}`))
		require.NoError(t, err)
		assert.True(t, inv["milk"].Quantity.Equal(dec(t, "2")))
		assert.True(t, inv["milk"].UnitPrice.Equal(dec(t, "3.5")))
	})

	t.Run("empty_row_is_empty_fridge", func(t *testing.T) {
		inv, err := domain.DecodeInventory(nil)
		require.NoError(t, err)
		assert.Empty(t, inv)
	})

	t.Run("rejects_invariant_violations", func(t *testing.T) {
		_, err := domain.DecodeInventory([]byte(`{"milk":{"quantity":0,"unit_price":3.5}}`))
		require.Error(t, err)
	})
}
