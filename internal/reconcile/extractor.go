// Package reconcile reconstructs completed NFT offer acceptances from
// transaction metadata.
//
// A ledger record never says who sold to whom for how much. The sale is
// inferred from the NFTokenOffer entries an NFTokenAcceptOffer transaction
// deleted: the sell-side offer is mandatory evidence, and the presence of a
// buy-side offer distinguishes a crossed trade from a direct accept.
package reconcile

import (
	"fmt"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/ledger"
)

// Offers are the sell-side and buy-side offers one transaction consumed.
// Either side may be nil.
type Offers struct {
	Sell *models.OfferRecord
	Buy  *models.OfferRecord
}

// ExtractOffers scans the metadata of one transaction and returns the
// NFTokenOffer entries it deleted, classified by their final Flags.
//
// Behavior:
//   - Non-accept transactions, bodies without NFTokenSellOffer, failed results
//     and metadata without AffectedNodes yield empty Offers.
//   - A node qualifies when it is a DeletedNode of type NFTokenOffer with FinalFields.
//   - Flags bit 0 set is sell-side, Flags == 0 is buy-side, any other value is
//     ignored before its remaining fields are read.
//   - When several nodes land on the same side, the last one scanned wins.
//
// Returns a *ledger.FieldError when a qualifying node lacks Flags, or when a
// sell-side or buy-side node lacks another required field.
func ExtractOffers(e ledger.Entry) (Offers, error) {
	var out Offers

	if e.Tx.TransactionType != ledger.TxTypeAcceptOffer || !e.Tx.HasSellOffer() {
		return out, nil
	}
	if !e.Meta.Succeeded() || e.Meta.AffectedNodes == nil {
		return out, nil
	}

	for i, node := range e.Meta.AffectedNodes {
		del := node.DeletedNode
		if del == nil || !del.HasFinalFields() || del.LedgerEntryType != ledger.EntryTypeNFTokenOffer {
			continue
		}

		path := finalFieldsPath(i)
		flags, err := ledger.DecodeOfferFlags(path, del.FinalFields)
		if err != nil {
			return Offers{}, err
		}
		side := models.OfferRecord{Flags: flags}
		if !side.IsSell() && !side.IsBuy() {
			continue
		}

		fields, err := ledger.DecodeOfferFields(path, del.FinalFields)
		if err != nil {
			return Offers{}, err
		}

		rec := models.OfferRecord{
			Flags:       fields.Flags,
			Owner:       fields.Owner,
			Amount:      fields.Amount,
			NFTokenID:   fields.NFTokenID,
			Destination: fields.Destination,
			LedgerIndex: del.LedgerIndex,
		}

		switch {
		case rec.IsSell():
			out.Sell = &rec
		case rec.IsBuy():
			out.Buy = &rec
		}
	}

	return out, nil
}

func finalFieldsPath(i int) string {
	return fmt.Sprintf("meta.AffectedNodes[%d].DeletedNode.FinalFields", i)
}
