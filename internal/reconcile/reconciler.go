package reconcile

import (
	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/ledger"
)

// Reconcile decides whether the offers consumed by tx amount to a completed
// acceptance and, if so, builds the event.
//
// Rules, in order:
//   - no sell-side offer: no event.
//   - body references NFTokenBuyOffer (crossed trade): the buy-side offer must
//     exist and name the same NFT; seller = sell owner, buyer = buy owner,
//     price = buy amount.
//   - otherwise (direct accept): seller = sell owner, buyer = sell destination
//     (empty for an unrestricted offer), price = sell amount.
//
// Acceptor is always the submitting account.
//
// ledger_index and date must be present on a transaction that yields an event;
// their absence is reported as a *ledger.FieldError.
func Reconcile(tx ledger.Transaction, offers Offers) (models.AcceptanceEvent, bool, error) {
	sell := offers.Sell
	if sell == nil {
		return models.AcceptanceEvent{}, false, nil
	}

	var ev models.AcceptanceEvent

	if tx.HasBuyOffer() {
		buy := offers.Buy
		if buy == nil || buy.NFTokenID != sell.NFTokenID {
			return models.AcceptanceEvent{}, false, nil
		}
		ev = models.AcceptanceEvent{
			NFTokenID:      sell.NFTokenID,
			Seller:         sell.Owner,
			Buyer:          buy.Owner,
			Price:          buy.Amount,
			SellOfferIndex: sell.LedgerIndex,
			BuyOfferIndex:  buy.LedgerIndex,
			Crossed:        true,
		}
	} else {
		ev = models.AcceptanceEvent{
			NFTokenID:      sell.NFTokenID,
			Seller:         sell.Owner,
			Buyer:          sell.Destination,
			Price:          sell.Amount,
			SellOfferIndex: sell.LedgerIndex,
		}
	}

	if tx.LedgerIndex == nil {
		return models.AcceptanceEvent{}, false, &ledger.FieldError{Path: "tx.ledger_index", Err: ledger.ErrMissing}
	}
	if tx.Date == nil {
		return models.AcceptanceEvent{}, false, &ledger.FieldError{Path: "tx.date", Err: ledger.ErrMissing}
	}
	ev.LedgerIndex = *tx.LedgerIndex
	ev.Date = *tx.Date
	ev.TxHash = tx.Hash
	ev.Acceptor = tx.Account

	return ev, true, nil
}
