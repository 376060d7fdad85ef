package models

// FlagSellNFToken marks an NFTokenOffer entry as a sell offer (bit 0).
const FlagSellNFToken uint32 = 0x00000001

// OfferRecord is a snapshot of one NFTokenOffer entry at the moment a
// transaction deleted it.
//
// Fields:
//   - Flags: final-state flags; bit 0 set means sell, exactly 0 means buy.
//   - Owner: account that created the offer.
//   - Amount: price attached to the offer.
//   - NFTokenID: the NFT being offered.
//   - Destination: account the offer is restricted to (empty = anyone).
//   - LedgerIndex: key of the deleted entry, kept for traceability only.
type OfferRecord struct {
	Flags       uint32
	Owner       string
	Amount      Amount
	NFTokenID   string
	Destination string
	LedgerIndex string
}

// IsSell reports whether the offer is sell-side.
func (o OfferRecord) IsSell() bool {
	return o.Flags&FlagSellNFToken != 0
}

// IsBuy reports whether the offer is buy-side. Only a zero flag value counts.
func (o OfferRecord) IsBuy() bool {
	return o.Flags == 0
}
