// internal/handlers/export_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/handlers"
	"github.com/ammerola/fridge-be/test/helpers"
	"github.com/ammerola/fridge-be/test/mocks"
)

func exportRequest(uid, query string) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/fridges/"+uid+"/export"+query, nil)
	req.SetPathValue("uid", uid)
	return req
}

func sampleInventory() domain.Inventory {
	return domain.Inventory{
		"milk": {
			Quantity:  decimal.RequireFromString("4"),
			UnitPrice: decimal.RequireFromString("4.00"),
		},
		"eggs": {
			Quantity:  decimal.RequireFromString("12"),
			UnitPrice: decimal.RequireFromString("0.40"),
		},
	}
}

func TestExportHandler_ExportExcel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockFridgeService(ctrl)
	mockService.EXPECT().
		GetInventory(gomock.Any(), "u1").
		Return(sampleInventory(), nil)

	handler := handlers.NewExportHandler(mockService, nil, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.ExportFridge(w, exportRequest("u1", ""))

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "fridge_u1_")

	// The payload must be a readable workbook, not just non-empty bytes.
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, file.Sheets)

	sheet := file.Sheets[0]
	// Header, two items in sorted name order, total row.
	require.Equal(t, 4, sheet.MaxRow)

	firstItem, err := sheet.Cell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "eggs", firstItem.Value)

	total, err := sheet.Cell(3, 3)
	require.NoError(t, err)
	assert.Equal(t, "20.80", total.Value)
}

func TestExportHandler_ExportJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockFridgeService(ctrl)
	mockService.EXPECT().
		GetInventory(gomock.Any(), "u1").
		Return(sampleInventory(), nil)

	// No cache wired: every request is a miss.
	handler := handlers.NewExportHandler(mockService, nil, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.ExportFridge(w, exportRequest("u1", "?format=json"))

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))

	var response handlers.JSONExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "u1", response.UID)
	assert.Equal(t, 2, response.Metadata.TotalItems)
	assert.True(t, response.Metadata.TotalValue.Equal(decimal.RequireFromString("20.80")),
		"got total %s", response.Metadata.TotalValue)
}

func TestExportHandler_ExportJSON_ServesCachedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached, err := json.Marshal(handlers.JSONExportResponse{UID: "u1"})
	require.NoError(t, err)

	mockService := mocks.NewMockFridgeService(ctrl)
	mockService.EXPECT().
		GetInventory(gomock.Any(), "u1").
		Return(sampleInventory(), nil)

	mockCache := mocks.NewMockCacheRepository(ctrl)
	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, dest interface{}) error {
			*dest.(*[]byte) = cached
			return nil
		})

	handler := handlers.NewExportHandler(mockService, mockCache, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.ExportFridge(w, exportRequest("u1", "?format=json"))

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
	assert.JSONEq(t, string(cached), w.Body.String())
}

func TestExportHandler_UnknownFridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockFridgeService(ctrl)
	mockService.EXPECT().
		GetInventory(gomock.Any(), "nobody").
		Return(nil, fmt.Errorf("fridge nobody: %w", domain.ErrNotFound))

	handler := handlers.NewExportHandler(mockService, nil, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.ExportFridge(w, exportRequest("nobody", ""))

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestExportHandler_UnsupportedFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockFridgeService(ctrl)
	mockService.EXPECT().
		GetInventory(gomock.Any(), "u1").
		Return(sampleInventory(), nil)

	handler := handlers.NewExportHandler(mockService, nil, helpers.TestLogger())
	w := httptest.NewRecorder()
	handler.ExportFridge(w, exportRequest("u1", "?format=csv"))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
