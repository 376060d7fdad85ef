package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates the persisted sales of one NFT.
//
// Fields:
//   - NFTokenID: the NFT the summary is about.
//   - Sales: number of recorded acceptances.
//   - LastPrice / MaxPrice: XRP-denominated prices in drops (issued-currency sales are excluded).
//   - FirstSaleAt / LastSaleAt: close times of the earliest and latest sale.
//
// This model is returned by the API when querying /api/v1/nfts/{nft_id}/summary.
type Summary struct {
	NFTokenID   string
	Sales       int64
	LastPrice   decimal.Decimal
	MaxPrice    decimal.Decimal
	FirstSaleAt time.Time
	LastSaleAt  time.Time
}
