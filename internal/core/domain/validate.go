// internal/core/domain/validate.go
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationKind classifies why a batch was rejected.
type ValidationKind string

const (
	ValidationEmptyBatch          ValidationKind = "empty_batch"
	ValidationInvalidName         ValidationKind = "invalid_name"
	ValidationMissingField        ValidationKind = "missing_field"
	ValidationNonNumeric          ValidationKind = "non_numeric"
	ValidationNonPositiveQuantity ValidationKind = "non_positive_quantity"
	ValidationNegativePrice       ValidationKind = "negative_price"
)

// ValidationError reports the first offending batch entry. Item and Field are
// empty when the batch as a whole is malformed.
type ValidationError struct {
	Kind  ValidationKind
	Item  string
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationEmptyBatch:
		return "batch has no items"
	case ValidationInvalidName:
		return fmt.Sprintf("invalid item name %q", e.Item)
	case ValidationMissingField:
		return fmt.Sprintf("item %q is missing field %q", e.Item, e.Field)
	case ValidationNonNumeric:
		return fmt.Sprintf("item %q has non-numeric %s", e.Item, e.Field)
	case ValidationNonPositiveQuantity:
		return fmt.Sprintf("item %q must have a positive quantity", e.Item)
	case ValidationNegativePrice:
		return fmt.Sprintf("item %q cannot have a negative unit_price", e.Item)
	}
	return fmt.Sprintf("invalid batch entry %q", e.Item)
}

// ValidateBatch checks a scanned batch for structural and numeric validity
// and converts it into decimal form. It is total and side-effect free.
// Entries are checked in sorted-name order so the reported failure is
// deterministic regardless of map iteration order.
func ValidateBatch(batch Batch) (ValidatedBatch, error) {
	if len(batch) == 0 {
		return nil, &ValidationError{Kind: ValidationEmptyBatch}
	}

	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)

	validated := make(ValidatedBatch, len(batch))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, &ValidationError{Kind: ValidationInvalidName, Item: name}
		}

		entry := batch[name]

		quantity, err := parseBatchField(name, "quantity", entry.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := parseBatchField(name, "unit_price", entry.UnitPrice)
		if err != nil {
			return nil, err
		}

		if !quantity.IsPositive() {
			return nil, &ValidationError{Kind: ValidationNonPositiveQuantity, Item: name}
		}
		if unitPrice.IsNegative() {
			return nil, &ValidationError{Kind: ValidationNegativePrice, Item: name}
		}

		validated[name] = Item{Quantity: quantity, UnitPrice: unitPrice}
	}

	return validated, nil
}

// parseBatchField interprets one raw field as a decimal. Scanners sometimes
// emit numbers as JSON strings, so quotes are tolerated.
func parseBatchField(item, field string, raw []byte) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, &ValidationError{Kind: ValidationMissingField, Item: item, Field: field}
	}

	text = strings.Trim(text, `"`)
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &ValidationError{Kind: ValidationNonNumeric, Item: item, Field: field}
	}
	return value, nil
}
