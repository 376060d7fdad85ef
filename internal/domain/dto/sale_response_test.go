package dto

import (
	"testing"
	"time"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

func TestNewSaleResponse(t *testing.T) {
	ev := models.AcceptanceEvent{
		NFTokenID:     "NFT",
		LedgerIndex:   100,
		Date:          0,
		Seller:        "rS",
		Buyer:         "rB",
		Price:         models.Amount{Value: decimal.RequireFromString("12.50"), Currency: "USD", Issuer: "rI"},
		BuyOfferIndex: "B",
		Crossed:       true,
	}
	got := NewSaleResponse(ev)
	if got.Price.Value != "12.5" || got.Price.Currency != "USD" || got.Price.Issuer != "rI" || got.Price.Native {
		t.Fatalf("unexpected price: %+v", got.Price)
	}
	if !got.Crossed || got.BuyOfferIndex != "B" {
		t.Fatalf("unexpected offer refs: %+v", got)
	}
	if want := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC); !got.ClosedAt.Equal(want) {
		t.Fatalf("closed_at=%v, want XRPL epoch %v", got.ClosedAt, want)
	}
}

func TestNewSaleResponse_DirectAcceptWithoutDestination(t *testing.T) {
	ev := models.AcceptanceEvent{
		NFTokenID:      "NFT",
		Seller:         "rS",
		Acceptor:       "rSubmitter",
		Price:          models.NewDropsAmount(1500000),
		SellOfferIndex: "S",
	}
	got := NewSaleResponse(ev)
	if got.Buyer != "" || got.Acceptor != "rSubmitter" {
		t.Fatalf("buyer=%q acceptor=%q", got.Buyer, got.Acceptor)
	}
	if !got.Price.Native || got.Price.Value != "1500000" || got.Price.Currency != "XRP" {
		t.Fatalf("unexpected native price: %+v", got.Price)
	}
}

func TestNewSummaryResponse(t *testing.T) {
	s := models.Summary{NFTokenID: "NFT", Sales: 2, LastPrice: decimal.NewFromInt(5), MaxPrice: decimal.NewFromInt(9)}
	got := NewSummaryResponse(s)
	if got.Sales != 2 || got.LastPrice != "5" || got.MaxPrice != "9" {
		t.Fatalf("unexpected summary: %+v", got)
	}
}
