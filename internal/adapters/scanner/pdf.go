// internal/adapters/scanner/pdf.go
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// Config holds scanner configuration
type Config struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// DefaultConfig returns default scanner configuration
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize:       20 << 20, // 20 MB
		AllowedExtensions: []string{".pdf"},
	}
}

// PDFScanner extracts a purchase batch from a receipt PDF. Its output is
// untrusted; callers run it through ValidateBatch before merging.
type PDFScanner struct {
	config *Config
	logger *slog.Logger
}

var _ ports.ReceiptScanner = (*PDFScanner)(nil)

// NewPDFScanner creates a new receipt scanner
func NewPDFScanner(config *Config, logger *slog.Logger) *PDFScanner {
	if config == nil {
		config = DefaultConfig()
	}
	return &PDFScanner{
		config: config,
		logger: logger.With(slog.String("component", "pdf_scanner")),
	}
}

// Scan reads the receipt at path and returns the batch of purchased items.
func (s *PDFScanner) Scan(ctx context.Context, path string) (domain.Batch, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ScanError{Kind: domain.ScanNotFound, Path: path, Err: err}
		}
		return nil, &domain.ScanError{Kind: domain.ScanServiceError, Path: path, Err: err}
	}

	if !s.extensionAllowed(path) {
		return nil, &domain.ScanError{
			Kind: domain.ScanUnsupportedFormat,
			Path: path,
			Err:  fmt.Errorf("extension %q not supported", filepath.Ext(path)),
		}
	}

	if info.Size() > s.config.MaxFileSize {
		return nil, &domain.ScanError{
			Kind: domain.ScanTooLarge,
			Path: path,
			Err:  fmt.Errorf("file is %d bytes, limit is %d", info.Size(), s.config.MaxFileSize),
		}
	}

	lines, err := s.extractLines(ctx, path)
	if err != nil {
		return nil, err
	}

	batch := ParseReceiptLines(lines)
	if len(batch) == 0 {
		return nil, &domain.ScanError{
			Kind: domain.ScanParseError,
			Path: path,
			Err:  fmt.Errorf("no purchase lines recognized"),
		}
	}

	s.logger.InfoContext(ctx, "receipt scanned",
		slog.String("path", path),
		slog.Int("items", len(batch)))

	return batch, nil
}

func (s *PDFScanner) extensionAllowed(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range s.config.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *PDFScanner) extractLines(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &domain.ScanError{Kind: domain.ScanParseError, Path: path, Err: err}
	}
	defer f.Close()

	var lines []string
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				"err", err)
			continue
		}

		lines = append(lines, strings.Split(text, "\n")...)
	}

	return lines, nil
}

// Receipt line layout: item name, quantity, unit price. The price may carry
// a currency sign and thousands separators.
var (
	receiptLineRe = regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)\s+\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*$`)
	footerRe      = regexp.MustCompile(`(?i)^(SUBTOTAL|TOTAL|TAX|CHANGE|CASH|CARD)\b`)
)

// ParseReceiptLines turns extracted text lines into a batch. Lines that do
// not look like purchases are skipped; repeated item names accumulate their
// quantities at the scanned price.
func ParseReceiptLines(lines []string) domain.Batch {
	batch := domain.Batch{}
	quantities := map[string]decimal.Decimal{}
	prices := map[string]decimal.Decimal{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || footerRe.MatchString(line) {
			continue
		}

		m := receiptLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}

		qty, err := decimal.NewFromString(m[2])
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
		if err != nil {
			continue
		}

		if existing, ok := quantities[name]; ok {
			quantities[name] = existing.Add(qty)
		} else {
			quantities[name] = qty
			prices[name] = price
		}
	}

	for name, qty := range quantities {
		batch[name] = domain.NewBatchItem(qty.String(), prices[name].String())
	}

	return batch
}
