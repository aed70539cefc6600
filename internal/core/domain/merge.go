// internal/core/domain/merge.go
package domain

// Merge folds a validated batch into the current inventory and returns a new
// snapshot. It is pure and deterministic: the inputs are never mutated, and
// because batch keys are unique the result is independent of iteration order.
//
// New items are inserted with their price rounded to MoneyPrecision. Colliding
// items get the summed quantity and the weighted average of the old and new
// prices, so total value (quantity x price) is conserved across merges:
//
//	price = round2((q_old*p_old + q_new*p_new) / (q_old + q_new))
//
// Rounding happens only here, at the persisted boundary, so repeated merges
// drift at most a cent each. Merge never removes or zeroes an entry.
func Merge(current Inventory, batch ValidatedBatch) Inventory {
	merged := current.Clone()

	for name, incoming := range batch {
		existing, ok := merged[name]
		if !ok {
			merged[name] = Item{
				Quantity:  incoming.Quantity,
				UnitPrice: incoming.UnitPrice.Round(MoneyPrecision),
			}
			continue
		}

		totalQuantity := existing.Quantity.Add(incoming.Quantity)
		totalValue := existing.Quantity.Mul(existing.UnitPrice).
			Add(incoming.Quantity.Mul(incoming.UnitPrice))

		merged[name] = Item{
			Quantity:  totalQuantity,
			UnitPrice: totalValue.Div(totalQuantity).Round(MoneyPrecision),
		}
	}

	return merged
}
