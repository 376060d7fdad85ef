package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/guttosm/xnftpulse/internal/domain/models"
)

// DecodeEntry parses one raw history entry ({"tx":...,"meta":...}).
//
// Required: tx, meta, tx.TransactionType, meta.TransactionResult.
// Every affected node must be an object; node contents are decoded lazily
// apart from the wrapper fields. Errors are *FieldError with a path relative
// to the entry.
func DecodeEntry(raw json.RawMessage) (Entry, error) {
	var outer struct {
		Tx        json.RawMessage `json:"tx"`
		Meta      json.RawMessage `json:"meta"`
		Validated bool            `json:"validated"`
	}
	if err := decodeObject("", raw, &outer); err != nil {
		return Entry{}, err
	}

	var e Entry
	e.Validated = outer.Validated

	if err := decodeObject("tx", outer.Tx, &e.Tx); err != nil {
		return Entry{}, err
	}
	if e.Tx.TransactionType == "" {
		return Entry{}, missing("tx.TransactionType")
	}

	meta, err := decodeMeta(outer.Meta)
	if err != nil {
		return Entry{}, err
	}
	e.Meta = meta

	return e, nil
}

func decodeMeta(raw json.RawMessage) (Meta, error) {
	var m struct {
		TransactionResult string          `json:"TransactionResult"`
		AffectedNodes     json.RawMessage `json:"AffectedNodes"`
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		// binary-encoded metadata is never requested
		return Meta{}, &FieldError{Path: "meta", Err: fmt.Errorf("%w: binary metadata is not supported", ErrNotObject)}
	}
	if err := decodeObject("meta", raw, &m); err != nil {
		return Meta{}, err
	}
	if m.TransactionResult == "" {
		return Meta{}, missing("meta.TransactionResult")
	}

	out := Meta{TransactionResult: m.TransactionResult}
	if isAbsent(m.AffectedNodes) {
		return out, nil
	}

	items, err := decodeArray("meta.AffectedNodes", m.AffectedNodes)
	if err != nil {
		return Meta{}, err
	}
	out.AffectedNodes = make([]AffectedNode, 0, len(items))
	for i, item := range items {
		var n AffectedNode
		if err := decodeObject(indexPath("meta.AffectedNodes", i), item, &n); err != nil {
			return Meta{}, err
		}
		out.AffectedNodes = append(out.AffectedNodes, n)
	}
	return out, nil
}

// DecodeOfferFlags reads only FinalFields.Flags of a deleted NFTokenOffer node,
// so the side of an offer can be known before its other fields are required.
func DecodeOfferFlags(path string, raw json.RawMessage) (uint32, error) {
	var f struct {
		Flags *uint32 `json:"Flags"`
	}
	if err := decodeObject(path, raw, &f); err != nil {
		return 0, err
	}
	if f.Flags == nil {
		return 0, missing(joinPath(path, "Flags"))
	}
	return *f.Flags, nil
}

// DecodeOfferFields parses the FinalFields of a deleted NFTokenOffer node.
// Flags, Owner, NFTokenID and Amount are required; Destination is optional.
// path locates the FinalFields object in error messages.
func DecodeOfferFields(path string, raw json.RawMessage) (OfferFields, error) {
	var f struct {
		Flags       *uint32         `json:"Flags"`
		Owner       *string         `json:"Owner"`
		Amount      json.RawMessage `json:"Amount"`
		NFTokenID   *string         `json:"NFTokenID"`
		Destination string          `json:"Destination"`
	}
	if err := decodeObject(path, raw, &f); err != nil {
		return OfferFields{}, err
	}

	switch {
	case f.Flags == nil:
		return OfferFields{}, missing(joinPath(path, "Flags"))
	case f.Owner == nil || *f.Owner == "":
		return OfferFields{}, missing(joinPath(path, "Owner"))
	case f.NFTokenID == nil || *f.NFTokenID == "":
		return OfferFields{}, missing(joinPath(path, "NFTokenID"))
	case isAbsent(f.Amount):
		return OfferFields{}, missing(joinPath(path, "Amount"))
	}

	amount, err := models.ParseAmount(f.Amount)
	if err != nil {
		return OfferFields{}, &FieldError{Path: joinPath(path, "Amount"), Err: err}
	}

	return OfferFields{
		Flags:       *f.Flags,
		Owner:       *f.Owner,
		Amount:      amount,
		NFTokenID:   *f.NFTokenID,
		Destination: f.Destination,
	}, nil
}

// DecodeHistory parses an nft_history payload. It accepts either the bare
// result object or a full response envelope ({"result": {...}}).
func DecodeHistory(raw json.RawMessage) (History, error) {
	var envelope struct {
		Result       json.RawMessage `json:"result"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := decodeObject("", raw, &envelope); err != nil {
		return History{}, err
	}

	path := ""
	body := raw
	if isAbsent(envelope.Transactions) && !isAbsent(envelope.Result) {
		path = "result"
		body = envelope.Result
	}

	var h struct {
		NFTokenID    string          `json:"nft_id"`
		Transactions json.RawMessage `json:"transactions"`
		Marker       json.RawMessage `json:"marker"`
		Limit        int             `json:"limit"`
	}
	if err := decodeObject(path, body, &h); err != nil {
		return History{}, err
	}
	txs, err := decodeArray(joinPath(path, "transactions"), h.Transactions)
	if err != nil {
		return History{}, err
	}

	return History{
		NFTokenID:    h.NFTokenID,
		Transactions: txs,
		Marker:       h.Marker,
		Limit:        h.Limit,
	}, nil
}
