// internal/handlers/fridge_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/core/ports"
	"github.com/ammerola/fridge-be/internal/handlers"
	"github.com/ammerola/fridge-be/test/helpers"
	"github.com/ammerola/fridge-be/test/mocks"
)

func updateRequest(t *testing.T, uid string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/fridges/"+uid+"/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("uid", uid)
	return req
}

func TestFridgeHandler_UpdateItems(t *testing.T) {
	tests := []struct {
		name           string
		uid            string
		body           string
		setupMocks     func(*mocks.MockFridgeService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "returns_report_on_success",
			uid:  "u1",
			body: `{"milk": {"quantity": 2, "unit_price": 3.5}}`,
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					Update(gomock.Any(), "u1", gomock.Any()).
					Return(&domain.UpdateReport{
						ItemsAdded: 1,
						Inventory: domain.Inventory{
							"milk": {
								Quantity:  decimal.RequireFromString("2"),
								UnitPrice: decimal.RequireFromString("3.50"),
							},
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var report domain.UpdateReport
				require.NoError(t, json.Unmarshal(body, &report))
				assert.Equal(t, 1, report.ItemsAdded)
				assert.Contains(t, report.Inventory, "milk")
			},
		},
		{
			name: "maps_validation_error_to_400",
			uid:  "u1",
			body: `{"milk": {"quantity": 0, "unit_price": 3.5}}`,
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					Update(gomock.Any(), "u1", gomock.Any()).
					Return(nil, &domain.ValidationError{
						Kind:  domain.ValidationNonPositiveQuantity,
						Item:  "milk",
						Field: "quantity",
					})
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, string(domain.ValidationNonPositiveQuantity), resp["kind"])
				assert.Equal(t, "milk", resp["item"])
				assert.Equal(t, "quantity", resp["field"])
			},
		},
		{
			name: "maps_store_outage_to_503",
			uid:  "u1",
			body: `{"milk": {"quantity": 2, "unit_price": 3.5}}`,
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					Update(gomock.Any(), "u1", gomock.Any()).
					Return(nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "rejects_malformed_body",
			uid:            "u1",
			body:           `{"milk": `,
			setupMocks:     func(service *mocks.MockFridgeService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockFridgeService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewFridgeHandler(mockService, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.UpdateItems(w, updateRequest(t, tt.uid, tt.body))

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestFridgeHandler_GetFridge(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockFridgeService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "returns_inventory",
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					GetInventory(gomock.Any(), "u1").
					Return(domain.Inventory{
						"eggs": {
							Quantity:  decimal.RequireFromString("12"),
							UnitPrice: decimal.RequireFromString("0.40"),
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var resp struct {
					UID       string           `json:"uid"`
					Inventory domain.Inventory `json:"inventory"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "u1", resp.UID)
				assert.Contains(t, resp.Inventory, "eggs")
			},
		},
		{
			name: "unknown_fridge_is_404",
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					GetInventory(gomock.Any(), "u1").
					Return(nil, fmt.Errorf("fridge u1: %w", domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store_outage_is_503",
			setupMocks: func(service *mocks.MockFridgeService) {
				service.EXPECT().
					GetInventory(gomock.Any(), "u1").
					Return(nil, fmt.Errorf("%w: timeout", domain.ErrStoreUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockFridgeService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewFridgeHandler(mockService, helpers.TestLogger())
			req := httptest.NewRequest("GET", "/api/v1/fridges/u1", nil)
			req.SetPathValue("uid", "u1")
			w := httptest.NewRecorder()
			handler.GetFridge(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestFridgeHandler_ListFridges_ParamParsing(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedParams ports.ListParams
	}{
		{name: "defaults", query: "", expectedParams: ports.ListParams{Page: 1, PageSize: 20}},
		{name: "explicit_page_and_limit", query: "?page=3&limit=50", expectedParams: ports.ListParams{Page: 3, PageSize: 50}},
		{name: "limit_capped_at_100", query: "?limit=500", expectedParams: ports.ListParams{Page: 1, PageSize: 100}},
		{name: "garbage_falls_back_to_defaults", query: "?page=x&limit=-2", expectedParams: ports.ListParams{Page: 1, PageSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockFridgeService(ctrl)
			mockService.EXPECT().
				ListFridges(gomock.Any(), tt.expectedParams).
				Return(&ports.ListResult{
					Page:     tt.expectedParams.Page,
					PageSize: tt.expectedParams.PageSize,
				}, nil)

			handler := handlers.NewFridgeHandler(mockService, helpers.TestLogger())
			req := httptest.NewRequest("GET", "/api/v1/fridges"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.ListFridges(w, req)

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		})
	}
}
