package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/xnftpulse/internal/domain/dto"
	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/service"
	"github.com/shopspring/decimal"
)

const validNFT = "000800006203F49C21D5D6E022CB16DE3538F248662FC73C00000099000000A1"

type mockSalesService struct {
	sales    []models.AcceptanceEvent
	summary  *models.Summary
	err      error
	gotID    string
	gotLimit int
}

func (m *mockSalesService) GetSales(_ context.Context, nftID string, limit int) ([]models.AcceptanceEvent, error) {
	m.gotID, m.gotLimit = nftID, limit
	return m.sales, m.err
}

func (m *mockSalesService) GetSummary(_ context.Context, nftID string) (*models.Summary, error) {
	m.gotID = nftID
	return m.summary, m.err
}

var _ service.SalesService = (*mockSalesService)(nil)

func setupRouterWithMock(s service.SalesService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/nfts/:nft_id/sales", h.GetSales)
	v1.GET("/nfts/:nft_id/summary", h.GetSummary)
	return r
}

func sampleSale() models.AcceptanceEvent {
	return models.AcceptanceEvent{
		NFTokenID:   validNFT,
		LedgerIndex: 75443457,
		Date:        720000000,
		Seller:      "rSeller",
		Buyer:       "rBuyer",
		Price:       models.NewDropsAmount(1500000),
		TxHash:      "HASH",
	}
}

func TestGetSales_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockSalesService
		query  string
		status int
		assert func(t *testing.T, svc *mockSalesService, body []byte)
	}{
		{
			name:   "invalid nft id",
			svc:    &mockSalesService{},
			query:  "/api/v1/nfts/XYZ/sales",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid limit",
			svc:    &mockSalesService{},
			query:  "/api/v1/nfts/" + validNFT + "/sales?limit=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "zero limit",
			svc:    &mockSalesService{},
			query:  "/api/v1/nfts/" + validNFT + "/sales?limit=0",
			status: http.StatusBadRequest,
		},
		{
			name:   "not found",
			svc:    &mockSalesService{},
			query:  "/api/v1/nfts/" + validNFT + "/sales",
			status: http.StatusNotFound,
		},
		{
			name:   "internal error",
			svc:    &mockSalesService{err: errors.New("db down")},
			query:  "/api/v1/nfts/" + validNFT + "/sales",
			status: http.StatusInternalServerError,
			assert: func(t *testing.T, _ *mockSalesService, body []byte) {
				var out dto.ErrorResponse
				if err := json.Unmarshal(body, &out); err != nil || out.ErrorDetails != "db down" {
					t.Fatalf("unexpected error body: %s", body)
				}
			},
		},
		{
			name:   "success with lower-case id",
			svc:    &mockSalesService{sales: []models.AcceptanceEvent{sampleSale()}},
			query:  "/api/v1/nfts/" + strings.ToLower(validNFT) + "/sales?limit=5",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockSalesService, body []byte) {
				if svc.gotID != validNFT || svc.gotLimit != 5 {
					t.Fatalf("service called with id=%s limit=%d", svc.gotID, svc.gotLimit)
				}
				var out []dto.SaleResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 1 || out[0].Price.Value != "1500000" || out[0].Price.Currency != "XRP" || out[0].Buyer != "rBuyer" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetSummary_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockSalesService
		id     string
		status int
	}{
		{name: "invalid nft id", svc: &mockSalesService{}, id: "nope", status: http.StatusBadRequest},
		{name: "not found", svc: &mockSalesService{}, id: validNFT, status: http.StatusNotFound},
		{name: "internal error", svc: &mockSalesService{err: errors.New("db down")}, id: validNFT, status: http.StatusInternalServerError},
		{
			name:   "success",
			svc:    &mockSalesService{summary: &models.Summary{NFTokenID: validNFT, Sales: 2, LastPrice: decimal.NewFromInt(7), MaxPrice: decimal.NewFromInt(9)}},
			id:     validNFT,
			status: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nfts/"+tc.id+"/summary", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusOK {
				var out dto.SummaryResponse
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Sales != 2 || out.MaxPrice != "9" {
					t.Fatalf("unexpected body: %s", w.Body.String())
				}
			}
		})
	}
}
