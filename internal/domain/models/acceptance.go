package models

import "time"

// RippleEpochOffset is the number of seconds between the Unix epoch and the
// XRPL epoch (2000-01-01T00:00:00Z).
const RippleEpochOffset int64 = 946684800

// AcceptanceEvent is a completed NFT offer acceptance reconstructed from a
// single NFTokenAcceptOffer transaction.
//
// Fields:
//   - NFTokenID: the NFT that changed hands.
//   - LedgerIndex: ledger sequence the transaction was validated in.
//   - Date: close time in XRPL epoch seconds.
//   - Seller / Buyer: accounts on each side of the transfer. Buyer is empty for
//     a direct accept of an unrestricted sell offer.
//   - Acceptor: account that submitted the accept transaction (a broker for
//     crossed trades). Kept for traceability; it never stands in for Buyer.
//   - Price: amount that changed hands.
//   - TxHash: transaction hash.
//   - SellOfferIndex / BuyOfferIndex: keys of the consumed offer entries
//     (BuyOfferIndex is empty for a direct accept).
//   - Crossed: true when a sell and a buy offer were matched together.
//
// Events are built once and never mutated.
type AcceptanceEvent struct {
	NFTokenID      string `json:"nft_id"`
	LedgerIndex    int64  `json:"ledger_index"`
	Date           int64  `json:"date"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	Acceptor       string `json:"acceptor,omitempty"`
	Price          Amount `json:"price"`
	TxHash         string `json:"tx_hash,omitempty"`
	SellOfferIndex string `json:"sell_offer_index,omitempty"`
	BuyOfferIndex  string `json:"buy_offer_index,omitempty"`
	Crossed        bool   `json:"crossed"`
}

// Time converts the XRPL epoch date into UTC wall time.
func (e AcceptanceEvent) Time() time.Time {
	return RippleTime(e.Date)
}

// RippleTime converts XRPL epoch seconds into UTC time.
func RippleTime(date int64) time.Time {
	return time.Unix(date+RippleEpochOffset, 0).UTC()
}
