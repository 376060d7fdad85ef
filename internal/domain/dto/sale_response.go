package dto

import (
	"time"

	"github.com/guttosm/xnftpulse/internal/domain/models"
)

// PriceResponse is an amount as exposed by the API. Value is a decimal string
// in drops when Native, or in currency units for issued currencies.
type PriceResponse struct {
	Value    string `json:"value" example:"1500000"`
	Currency string `json:"currency" example:"XRP"`
	Issuer   string `json:"issuer,omitempty" example:""`
	Native   bool   `json:"native" example:"true"`
}

// SaleResponse represents one accepted NFT offer. Buyer is empty when an
// unrestricted sell offer was accepted directly; Acceptor is who submitted it.
type SaleResponse struct {
	NFTokenID      string        `json:"nft_id" example:"000800006203F49C21D5D6E022CB16DE3538F248662FC73C00000099000000A1"`
	LedgerIndex    int64         `json:"ledger_index" example:"75443457"`
	ClosedAt       time.Time     `json:"closed_at" example:"2022-11-01T10:20:30Z"`
	Seller         string        `json:"seller" example:"rGhcsTBSYQjNwAgkK9nGai1PoCcPZeXAdT"`
	Buyer          string        `json:"buyer" example:"rPEPPER7kfTD9w2To4CQk6UCfuHM9c6GDY"`
	Acceptor       string        `json:"acceptor,omitempty" example:"rPEPPER7kfTD9w2To4CQk6UCfuHM9c6GDY"`
	Price          PriceResponse `json:"price"`
	TxHash         string        `json:"tx_hash,omitempty"`
	SellOfferIndex string        `json:"sell_offer_index,omitempty"`
	BuyOfferIndex  string        `json:"buy_offer_index,omitempty"`
	Crossed        bool          `json:"crossed" example:"false"`
}

// SummaryResponse aggregates the recorded sales of one NFT.
// Prices are XRP drops; sales in issued currencies only count towards Sales.
type SummaryResponse struct {
	NFTokenID   string    `json:"nft_id"`
	Sales       int64     `json:"sales" example:"4"`
	LastPrice   string    `json:"last_price_drops" example:"7000000"`
	MaxPrice    string    `json:"max_price_drops" example:"9000000"`
	FirstSaleAt time.Time `json:"first_sale_at"`
	LastSaleAt  time.Time `json:"last_sale_at"`
}

// NewSaleResponse maps a stored acceptance to its API shape.
func NewSaleResponse(ev models.AcceptanceEvent) SaleResponse {
	return SaleResponse{
		NFTokenID:   ev.NFTokenID,
		LedgerIndex: ev.LedgerIndex,
		ClosedAt:    ev.Time(),
		Seller:      ev.Seller,
		Buyer:       ev.Buyer,
		Acceptor:    ev.Acceptor,
		Price: PriceResponse{
			Value:    ev.Price.Value.String(),
			Currency: ev.Price.Currency,
			Issuer:   ev.Price.Issuer,
			Native:   ev.Price.IsNative(),
		},
		TxHash:         ev.TxHash,
		SellOfferIndex: ev.SellOfferIndex,
		BuyOfferIndex:  ev.BuyOfferIndex,
		Crossed:        ev.Crossed,
	}
}

// NewSummaryResponse maps a Summary to its API shape.
func NewSummaryResponse(s models.Summary) SummaryResponse {
	return SummaryResponse{
		NFTokenID:   s.NFTokenID,
		Sales:       s.Sales,
		LastPrice:   s.LastPrice.String(),
		MaxPrice:    s.MaxPrice.String(),
		FirstSaleAt: s.FirstSaleAt,
		LastSaleAt:  s.LastSaleAt,
	}
}
