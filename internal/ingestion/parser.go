package ingestion

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/xnftpulse/internal/ledger"
	"github.com/guttosm/xnftpulse/internal/publisher"
	"github.com/guttosm/xnftpulse/internal/reconcile"
)

// maxHistoryFile bounds the size of a saved nft_history response.
const maxHistoryFile = 256 << 20

// ScanFile reconstructs the acceptances of a saved nft_history response and
// writes them to w as JSON lines.
//
// The file may hold the full WebSocket response or just its "result" object.
// Events found before a malformed entry are still written; the returned
// error names the failing entry.
func ScanFile(ctx context.Context, path string, w io.Writer, opts ...reconcile.Option) (reconcile.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(io.LimitReader(f, maxHistoryFile+1))
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw) > maxHistoryFile {
		return reconcile.Result{}, fmt.Errorf("read %s: file larger than %d bytes", path, maxHistoryFile)
	}

	h, err := ledger.DecodeHistory(raw)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("decode %s: %w", path, err)
	}

	res, scanErr := reconcile.ScanHistory(h, opts...)
	if err := publisher.NewConsole(w).Publish(ctx, res.Events); err != nil {
		return res, err
	}
	if scanErr != nil {
		return res, fmt.Errorf("%s: %w", path, scanErr)
	}
	return res, nil
}
