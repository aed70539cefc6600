// internal/handlers/fridge.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
)

// FridgeHandler handles fridge-related HTTP requests
type FridgeHandler struct {
	service ports.FridgeService
	logger  *slog.Logger
}

// NewFridgeHandler creates a new fridge handler
func NewFridgeHandler(service ports.FridgeService, logger *slog.Logger) *FridgeHandler {
	return &FridgeHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "fridge")),
	}
}

// UpdateItems handles POST /api/v1/fridges/{uid}/items
func (h *FridgeHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := r.PathValue("uid")

	var batch domain.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.service.Update(ctx, uid, batch)
	if err != nil {
		h.respondUpdateError(w, r, uid, err)
		return
	}

	h.logger.InfoContext(ctx, "fridge updated",
		slog.String("uid", uid),
		slog.Int("items_added", report.ItemsAdded))

	h.respondJSON(w, http.StatusOK, report)
}

// GetFridge handles GET /api/v1/fridges/{uid}
func (h *FridgeHandler) GetFridge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := r.PathValue("uid")

	inv, err := h.service.GetInventory(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Fridge not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get fridge",
			slog.String("uid", uid),
			slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrStoreUnavailable) {
			h.respondError(w, http.StatusServiceUnavailable, "Fridge store unavailable")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve fridge")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"uid":       uid,
		"inventory": inv,
	})
}

// ListFridges handles GET /api/v1/fridges
func (h *FridgeHandler) ListFridges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := h.parseListParams(r)

	result, err := h.service.ListFridges(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list fridges",
			slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrStoreUnavailable) {
			h.respondError(w, http.StatusServiceUnavailable, "Fridge store unavailable")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to list fridges")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *FridgeHandler) respondUpdateError(w http.ResponseWriter, r *http.Request, uid string, err error) {
	ctx := r.Context()

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": vErr.Error(),
			"kind":  string(vErr.Kind),
			"item":  vErr.Item,
			"field": vErr.Field,
		})
		return
	}

	h.logger.ErrorContext(ctx, "failed to update fridge",
		slog.String("uid", uid),
		slog.String("error", err.Error()))

	if errors.Is(err, domain.ErrStoreUnavailable) {
		h.respondError(w, http.StatusServiceUnavailable, "Fridge store unavailable")
		return
	}

	h.respondError(w, http.StatusInternalServerError, "Failed to update fridge")
}

// parseListParams parses query parameters for listing fridges
func (h *FridgeHandler) parseListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:     1,
		PageSize: 20,
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	return params
}

// Helper methods

func (h *FridgeHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *FridgeHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
