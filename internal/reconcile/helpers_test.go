package reconcile

import (
	"encoding/json"
	"testing"
)

// node is a deleted-node fixture; zero values are omitted from the JSON.
type node struct {
	entryType   string
	index       string
	flags       *int
	owner       string
	amount      any
	nftID       string
	destination string
}

func flags(v int) *int { return &v }

func sellNode(index, owner, nftID string, amount any) node {
	return node{entryType: "NFTokenOffer", index: index, flags: flags(1), owner: owner, amount: amount, nftID: nftID}
}

func buyNode(index, owner, nftID string, amount any) node {
	return node{entryType: "NFTokenOffer", index: index, flags: flags(0), owner: owner, amount: amount, nftID: nftID}
}

func (n node) toJSON() map[string]any {
	final := map[string]any{}
	if n.flags != nil {
		final["Flags"] = *n.flags
	}
	if n.owner != "" {
		final["Owner"] = n.owner
	}
	if n.amount != nil {
		final["Amount"] = n.amount
	}
	if n.nftID != "" {
		final["NFTokenID"] = n.nftID
	}
	if n.destination != "" {
		final["Destination"] = n.destination
	}
	return map[string]any{"DeletedNode": map[string]any{
		"LedgerEntryType": n.entryType,
		"LedgerIndex":     n.index,
		"FinalFields":     final,
	}}
}

// txFixture builds one nft_history entry.
type txFixture struct {
	txType    string
	account   string
	hash      string
	sellOffer string
	buyOffer  string
	ledger    int64
	date      int64
	result    string
	nodes     []node
	noNodes   bool
}

func acceptTx(hash string, ledger int64, nodes ...node) txFixture {
	return txFixture{
		txType:    "NFTokenAcceptOffer",
		account:   "rSubmitter",
		hash:      hash,
		sellOffer: "SELL",
		ledger:    ledger,
		date:      ledger * 10,
		result:    "tesSUCCESS",
		nodes:     nodes,
	}
}

func (f txFixture) raw(t *testing.T) json.RawMessage {
	t.Helper()
	tx := map[string]any{
		"TransactionType": f.txType,
		"Account":         f.account,
		"hash":            f.hash,
		"ledger_index":    f.ledger,
		"date":            f.date,
	}
	if f.sellOffer != "" {
		tx["NFTokenSellOffer"] = f.sellOffer
	}
	if f.buyOffer != "" {
		tx["NFTokenBuyOffer"] = f.buyOffer
	}
	meta := map[string]any{"TransactionResult": f.result}
	if !f.noNodes {
		nodes := make([]any, 0, len(f.nodes)+1)
		nodes = append(nodes, map[string]any{"ModifiedNode": map[string]any{
			"LedgerEntryType": "AccountRoot",
			"LedgerIndex":     "ACCT",
			"FinalFields":     map[string]any{"Balance": "100"},
		}})
		for _, n := range f.nodes {
			nodes = append(nodes, n.toJSON())
		}
		meta["AffectedNodes"] = nodes
	}
	b, err := json.Marshal(map[string]any{"tx": tx, "meta": meta, "validated": true})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

func rawList(t *testing.T, fs ...txFixture) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.raw(t))
	}
	return out
}
