package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/fridge-be/internal/adapters/scanner"
	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/test/helpers"
)

func TestParseReceiptLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantItems map[string][2]string // name -> [quantity, unit_price]
	}{
		{
			name: "plain_lines",
			lines: []string{
				"milk 2 3.50",
				"bread 1 2.00",
			},
			wantItems: map[string][2]string{
				"milk":  {"2", "3.5"},
				"bread": {"1", "2"},
			},
		},
		{
			name: "currency_signs_and_separators",
			lines: []string{
				"caviar 1 $1,250.00",
			},
			wantItems: map[string][2]string{
				"caviar": {"1", "1250"},
			},
		},
		{
			name: "multi_word_names",
			lines: []string{
				"orange juice 1.5 4.99",
			},
			wantItems: map[string][2]string{
				"orange juice": {"1.5", "4.99"},
			},
		},
		{
			name: "repeated_items_accumulate_quantity",
			lines: []string{
				"milk 2 3.50",
				"milk 1 3.50",
			},
			wantItems: map[string][2]string{
				"milk": {"3", "3.5"},
			},
		},
		{
			name: "footer_and_noise_skipped",
			lines: []string{
				"FRESH MART",
				"milk 2 3.50",
				"SUBTOTAL 7.00",
				"TOTAL 7.00",
				"thank you for shopping",
			},
			wantItems: map[string][2]string{
				"milk": {"2", "3.5"},
			},
		},
		{
			name:      "nothing_recognized",
			lines:     []string{"FRESH MART", "thank you"},
			wantItems: map[string][2]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := scanner.ParseReceiptLines(tt.lines)
			require.Len(t, batch, len(tt.wantItems))

			for name, qp := range tt.wantItems {
				item, ok := batch[name]
				require.True(t, ok, "missing item %q", name)
				assert.Equal(t, qp[0], string(item.Quantity), "quantity for %q", name)
				assert.Equal(t, qp[1], string(item.UnitPrice), "unit price for %q", name)
			}
		})
	}
}

func TestPDFScanner_Scan_Validation(t *testing.T) {
	dir := t.TempDir()

	// Not a real PDF, but enough to exercise the pre-read checks.
	txtPath := filepath.Join(dir, "receipt.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("milk 2 3.50"), 0o600))

	bigPath := filepath.Join(dir, "big.pdf")
	require.NoError(t, os.WriteFile(bigPath, make([]byte, 128), 0o600))

	s := scanner.NewPDFScanner(&scanner.Config{
		MaxFileSize:       64,
		AllowedExtensions: []string{".pdf"},
	}, helpers.TestLogger())

	tests := []struct {
		name     string
		path     string
		wantKind domain.ScanKind
	}{
		{
			name:     "missing_file",
			path:     filepath.Join(dir, "nope.pdf"),
			wantKind: domain.ScanNotFound,
		},
		{
			name:     "unsupported_extension",
			path:     txtPath,
			wantKind: domain.ScanUnsupportedFormat,
		},
		{
			name:     "oversized_file",
			path:     bigPath,
			wantKind: domain.ScanTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Scan(context.Background(), tt.path)
			require.Error(t, err)

			var scanErr *domain.ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, tt.wantKind, scanErr.Kind)
			assert.Equal(t, tt.path, scanErr.Path)
		})
	}
}

func TestPDFScanner_Scan_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	s := scanner.NewPDFScanner(nil, helpers.TestLogger())

	_, err := s.Scan(context.Background(), path)
	require.Error(t, err)

	var scanErr *domain.ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, domain.ScanParseError, scanErr.Kind)
}

func TestPDFScanner_OutputFeedsValidator(t *testing.T) {
	batch := scanner.ParseReceiptLines([]string{
		"milk 2 3.50",
		"eggs 12 0.25",
	})

	validated, err := domain.ValidateBatch(batch)
	require.NoError(t, err)
	assert.Len(t, validated, 2)
}
