package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/ledger"
)

// ShapeError reports a malformed history entry.
type ShapeError struct {
	Index  int    // position of the entry in the input list
	TxHash string // best-effort transaction hash, empty if unreadable
	Err    error
}

func (e *ShapeError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("entry %d (%s): %v", e.Index, e.TxHash, e.Err)
	}
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Result is the outcome of one scan.
//
// Fields:
//   - Events: acceptances in input order.
//   - Skipped: entries that decoded fine but were not qualifying acceptances.
//   - Failures: malformed entries (at most one unless isolation is enabled).
type Result struct {
	Events   []models.AcceptanceEvent
	Skipped  int
	Failures []*ShapeError
}

type scanOptions struct {
	isolate bool
}

// Option configures Scan.
type Option func(*scanOptions)

// WithIsolation keeps scanning after a malformed entry. Failures are
// collected in Result.Failures and joined into the returned error.
func WithIsolation() Option {
	return func(o *scanOptions) { o.isolate = true }
}

// Scan runs the extractor and reconciler over a list of raw history entries.
//
// Behavior:
//   - One event per qualifying transaction, in input order.
//   - Stateless: the same input always produces the same Result.
//   - By default the first malformed entry aborts the pass; events produced
//     before it are still returned together with a *ShapeError.
//   - WithIsolation() collects failures per entry and scans the whole list.
func Scan(entries []json.RawMessage, opts ...Option) (Result, error) {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Events: make([]models.AcceptanceEvent, 0, len(entries))}

	for i, raw := range entries {
		ev, ok, err := processEntry(raw)
		if err != nil {
			se := &ShapeError{Index: i, TxHash: peekHash(raw), Err: err}
			res.Failures = append(res.Failures, se)
			if !o.isolate {
				return res, se
			}
			continue
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Events = append(res.Events, ev)
	}

	if len(res.Failures) > 0 {
		errs := make([]error, len(res.Failures))
		for i, f := range res.Failures {
			errs[i] = f
		}
		return res, errors.Join(errs...)
	}
	return res, nil
}

// ScanHistory scans the transactions of one nft_history result.
func ScanHistory(h ledger.History, opts ...Option) (Result, error) {
	return Scan(h.Transactions, opts...)
}

func processEntry(raw json.RawMessage) (models.AcceptanceEvent, bool, error) {
	entry, err := ledger.DecodeEntry(raw)
	if err != nil {
		return models.AcceptanceEvent{}, false, err
	}
	offers, err := ExtractOffers(entry)
	if err != nil {
		return models.AcceptanceEvent{}, false, err
	}
	return Reconcile(entry.Tx, offers)
}

// peekHash extracts tx.hash for diagnostics, ignoring any decode problem.
func peekHash(raw json.RawMessage) string {
	var head struct {
		Tx struct {
			Hash string `json:"hash"`
		} `json:"tx"`
	}
	_ = json.Unmarshal(raw, &head)
	return head.Tx.Hash
}
