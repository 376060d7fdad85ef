// Package ledger describes the XRPL transaction records returned by the
// nft_history method and decodes them into explicit, validated structures.
package ledger

import (
	"encoding/json"

	"github.com/guttosm/xnftpulse/internal/domain/models"
)

const (
	// TxTypeAcceptOffer is the only transaction type that can complete a sale.
	TxTypeAcceptOffer = "NFTokenAcceptOffer"
	// ResultSuccess is the engine result of an applied transaction.
	ResultSuccess = "tesSUCCESS"
	// EntryTypeNFTokenOffer is the ledger entry type of a standing NFT offer.
	EntryTypeNFTokenOffer = "NFTokenOffer"
)

// Node wrapper kinds found in meta.AffectedNodes.
const (
	NodeCreated  = "CreatedNode"
	NodeModified = "ModifiedNode"
	NodeDeleted  = "DeletedNode"
)

// History is the result object of an nft_history request.
// Transactions are kept raw so that each entry is decoded on its own and
// shape errors can name the entry they come from.
type History struct {
	NFTokenID    string            `json:"nft_id"`
	Transactions []json.RawMessage `json:"transactions"`
	Marker       json.RawMessage   `json:"marker,omitempty"`
	Limit        int               `json:"limit,omitempty"`
}

// HasMarker reports whether more pages are available.
func (h History) HasMarker() bool {
	return !isAbsent(h.Marker)
}

// Entry is one transaction of the history together with its metadata.
type Entry struct {
	Tx        Transaction
	Meta      Meta
	Validated bool
}

// Transaction holds the transaction body fields this service reads.
// Pointer fields are optional; nil means the field was absent.
type Transaction struct {
	TransactionType  string  `json:"TransactionType"`
	Account          string  `json:"Account"`
	Hash             string  `json:"hash"`
	NFTokenSellOffer *string `json:"NFTokenSellOffer"`
	NFTokenBuyOffer  *string `json:"NFTokenBuyOffer"`
	LedgerIndex      *int64  `json:"ledger_index"`
	Date             *int64  `json:"date"`
}

// HasSellOffer reports whether the body references a sell offer.
func (t Transaction) HasSellOffer() bool { return t.NFTokenSellOffer != nil }

// HasBuyOffer reports whether the body references a buy offer.
func (t Transaction) HasBuyOffer() bool { return t.NFTokenBuyOffer != nil }

// Meta is the execution metadata of a transaction.
// AffectedNodes is nil when the field was absent.
type Meta struct {
	TransactionResult string
	AffectedNodes     []AffectedNode
}

// Succeeded reports whether the transaction applied successfully.
func (m Meta) Succeeded() bool { return m.TransactionResult == ResultSuccess }

// AffectedNode is one state change; exactly one wrapper is normally set.
type AffectedNode struct {
	CreatedNode  *NodeChange `json:"CreatedNode"`
	ModifiedNode *NodeChange `json:"ModifiedNode"`
	DeletedNode  *NodeChange `json:"DeletedNode"`
}

// Kind returns the wrapper name of the node, or "" if none is set.
func (n AffectedNode) Kind() string {
	switch {
	case n.DeletedNode != nil:
		return NodeDeleted
	case n.ModifiedNode != nil:
		return NodeModified
	case n.CreatedNode != nil:
		return NodeCreated
	}
	return ""
}

// NodeChange describes a single ledger entry change.
type NodeChange struct {
	LedgerEntryType string          `json:"LedgerEntryType"`
	LedgerIndex     string          `json:"LedgerIndex"`
	FinalFields     json.RawMessage `json:"FinalFields,omitempty"`
	PreviousFields  json.RawMessage `json:"PreviousFields,omitempty"`
	NewFields       json.RawMessage `json:"NewFields,omitempty"`
}

// HasFinalFields reports whether the change carries final-state values.
func (c NodeChange) HasFinalFields() bool { return !isAbsent(c.FinalFields) }

// OfferFields are the final-state fields of a deleted NFTokenOffer entry.
type OfferFields struct {
	Flags       uint32
	Owner       string
	Amount      models.Amount
	NFTokenID   string
	Destination string
}
