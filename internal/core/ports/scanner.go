// internal/core/ports/scanner.go
package ports

import (
	"context"

	"github.com/ammerola/fridge-be/internal/core/domain"
)

// ReceiptScanner extracts a batch of items from a receipt file. Failures are
// reported as *domain.ScanError. The scanner is an untrusted producer: its
// output must pass domain.ValidateBatch before it touches stored state.
type ReceiptScanner interface {
	Scan(ctx context.Context, path string) (domain.Batch, error)
}
