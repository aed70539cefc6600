// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/ammerola/fridge-be/internal/adapters/redis_adapter"
	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	UID       string           `json:"uid"`
	Inventory domain.Inventory `json:"inventory"`
	Metadata  ExportMetadata   `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate time.Time       `json:"export_date"`
	TotalItems int             `json:"total_items"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ExportHandler handles fridge export operations
type ExportHandler struct {
	service ports.FridgeService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.FridgeService, cache ports.CacheRepository, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// ExportFridge handles GET /api/v1/fridges/{uid}/export?format=xlsx|json
func (h *ExportHandler) ExportFridge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := r.PathValue("uid")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	inv, err := h.service.GetInventory(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Fridge not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to load fridge for export",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	switch format {
	case "xlsx":
		h.exportExcel(ctx, w, uid, inv)
	case "json":
		h.exportJSON(ctx, w, uid, inv)
	default:
		h.respondError(w, http.StatusBadRequest, "Unsupported format: use xlsx or json")
	}
}

func (h *ExportHandler) exportExcel(ctx context.Context, w http.ResponseWriter, uid string, inv domain.Inventory) {
	excelData, err := h.generateExcelFile(uid, inv)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("fridge_%s_%s.xlsx", uid, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.String("uid", uid),
		slog.Int("total_items", len(inv)))
}

func (h *ExportHandler) exportJSON(ctx context.Context, w http.ResponseWriter, uid string, inv domain.Inventory) {
	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, "json", uid)
	var cachedData []byte
	if h.cache != nil {
		if err := h.cache.Get(ctx, cacheKey, &cachedData); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Length", strconv.Itoa(len(cachedData)))
			_, _ = w.Write(cachedData)
			return
		}
	}

	response := JSONExportResponse{
		UID:       uid,
		Inventory: inv,
		Metadata: ExportMetadata{
			ExportDate: time.Now(),
			TotalItems: len(inv),
			TotalValue: inv.TotalValue(),
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal JSON export", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response", slog.String("error", err.Error()))
		return
	}

	if h.cache != nil {
		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := h.cache.SetWithTTL(cacheCtx, cacheKey, responseData, 5*time.Minute); err != nil {
				h.logger.WarnContext(cacheCtx, "failed to cache JSON export", slog.String("error", err.Error()))
			}
		}()
	}
}

// generateExcelFile creates an Excel file in memory from the inventory
func (h *ExportHandler) generateExcelFile(uid string, inv domain.Inventory) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Fridge")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{"Item", "Quantity", "Unit Price", "Line Total"}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	// Stable row order regardless of map iteration.
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		item := inv[name]
		row := sheet.AddRow()
		row.AddCell().Value = name
		row.AddCell().Value = item.Quantity.String()
		row.AddCell().Value = item.UnitPrice.StringFixed(domain.MoneyPrecision)
		row.AddCell().Value = item.Quantity.Mul(item.UnitPrice).StringFixed(domain.MoneyPrecision)
	}

	totalRow := sheet.AddRow()
	totalRow.AddCell().Value = "TOTAL"
	totalRow.AddCell()
	totalRow.AddCell()
	totalRow.AddCell().Value = inv.TotalValue().StringFixed(domain.MoneyPrecision)

	// Column indices are 1-based.
	for i := 1; i <= len(headers); i++ {
		sheet.SetColWidth(i, i, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
