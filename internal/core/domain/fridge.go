// internal/core/domain/fridge.go
package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted rows and API payloads carry quantity/unit_price as bare JSON
	// numbers, matching the fridges JSONB column layout.
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyPrecision is the decimal precision applied to unit prices at every
// persisted boundary.
const MoneyPrecision = 2

// Item is one fridge entry: how many units are held and the average price
// paid per unit across everything ever added.
type Item struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Inventory is the full contents of one user's fridge, keyed by item name.
// Name identity is case-sensitive. An empty map is a valid, empty fridge and
// is distinct from "no fridge row exists".
type Inventory map[string]Item

// Clone returns a shallow copy safe to mutate independently.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for name, item := range inv {
		out[name] = item
	}
	return out
}

// TotalValue returns the summed quantity*unit_price across all entries.
func (inv Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return total
}

// Validate checks the inventory invariant: every entry has a non-empty name,
// quantity > 0 and unit_price >= 0.
func (inv Inventory) Validate() error {
	for name, item := range inv {
		if name == "" {
			return fmt.Errorf("inventory entry with empty name")
		}
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("inventory entry %q has non-positive quantity %s", name, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("inventory entry %q has negative unit_price %s", name, item.UnitPrice)
		}
	}
	return nil
}

// DecodeInventory deserializes a stored fridge row and validates it at the
// boundary, so corrupt rows fail loudly instead of flowing into a merge.
func DecodeInventory(data []byte) (Inventory, error) {
	inv := Inventory{}
	if len(data) == 0 {
		return inv, nil
	}
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("stored inventory violates invariant: %w", err)
	}
	return inv, nil
}

// Encode serializes the inventory for storage. A nil inventory encodes as
// an empty JSON object.
func (inv Inventory) Encode() ([]byte, error) {
	if inv == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encode inventory: %w", err)
	}
	return data, nil
}

// BatchItem is one entry of a scanned receipt as produced by an untrusted
// scanner. Fields stay raw until ValidateBatch interprets them, so a missing
// field and a non-numeric field are distinguishable.
type BatchItem struct {
	Quantity  json.RawMessage `json:"quantity,omitempty"`
	UnitPrice json.RawMessage `json:"unit_price,omitempty"`
}

// Batch is a set of newly scanned items to be added to a fridge. It is only
// ever additive; it can never remove or overwrite an existing entry.
type Batch map[string]BatchItem

// NewBatchItem builds a batch entry from decimal string literals.
func NewBatchItem(quantity, unitPrice string) BatchItem {
	return BatchItem{
		Quantity:  json.RawMessage(quantity),
		UnitPrice: json.RawMessage(unitPrice),
	}
}

// ValidatedBatch is a Batch that passed ValidateBatch. Merge only accepts
// validated input.
type ValidatedBatch map[string]Item

// UpdateReport summarizes one successful fridge update.
type UpdateReport struct {
	ItemsAdded int       `json:"items_added"`
	Inventory  Inventory `json:"inventory"`
}

// Store error taxonomy. Repositories wrap infrastructure failures with
// ErrStoreUnavailable; callers branch with errors.Is.
var (
	ErrStoreUnavailable = errors.New("fridge store unavailable")
	ErrNotFound         = errors.New("fridge not found")
)
