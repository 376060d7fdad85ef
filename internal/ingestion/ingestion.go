package ingestion

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/logger"
	"github.com/guttosm/xnftpulse/internal/publisher"
	"github.com/guttosm/xnftpulse/internal/reconcile"
	"github.com/guttosm/xnftpulse/internal/storage"
)

const (
	defaultParallel = 4
	maxParallel     = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.AcceptancesRepository {
	return storage.NewAcceptancesRepository(db)
}

// Fetcher returns the full nft_history of one NFT, oldest first.
type Fetcher interface {
	FetchAll(ctx context.Context, nftID string) ([]json.RawMessage, error)
	Close() error
}

// Dialer opens a Fetcher. Each worker dials its own connection.
type Dialer func(ctx context.Context) (Fetcher, error)

// Options controls one ingestion run.
//
// Fields:
//   - NFTIDs: NFTs to ingest; empty means every row of the nftokens table.
//   - Parallel: worker count, clamped to 1..8 (default min(4, NumCPU)).
//   - Force: re-ingest NFTs whose ingestion_log entry is already published.
//   - Isolate: keep going past malformed history entries instead of failing the NFT.
type Options struct {
	NFTIDs   []string
	Parallel int
	Force    bool
	Isolate  bool
}

func (o Options) workers() int {
	if o.Parallel > 0 {
		if o.Parallel > maxParallel {
			return maxParallel
		}
		return o.Parallel
	}
	if c := runtime.NumCPU(); c < defaultParallel {
		return c
	}
	return defaultParallel
}

// ProcessNFTs fetches, reconstructs, persists and publishes the acceptances of a set of NFTs.
//
// Behavior:
//   - NFT ids are validated and upper-cased; duplicates are ingested once.
//   - NFTs whose ingestion was published are skipped unless opts.Force.
//   - Rows and the ingestion_log entry are replaced in one transaction, then events are
//     published and the entry is marked published. A failed publish leaves the entry
//     unpublished, so the next run replaces the rows and publishes again.
//   - A malformed history entry fails that NFT unless opts.Isolate, in which case it is logged
//     and the remaining events are still persisted.
//   - If any NFT returns error, cancels the rest and returns that error.
func ProcessNFTs(ctx context.Context, db *sql.DB, dial Dialer, pub publisher.Publisher, opts Options) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)

	ids, err := resolveIDs(repo, opts.NFTIDs)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logger.L().Warn().Msg("no NFTs to ingest")
		return nil
	}

	workers := opts.workers()
	logger.L().Info().Int("nfts", len(ids)).Int("max_parallel", workers).Bool("force", opts.Force).Bool("isolate", opts.Isolate).Msg("ingestion start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for i, id := range ids {
		idx := i
		nftID := id
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return g.Wait()
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			log := logger.L().With().Int("idx", idx+1).Int("total", len(ids)).Str("nft_id", nftID).Logger()

			// Idempotency: skip if already ingested and published, unless force
			done, err := repo.HasIngestionForNFT(nftID)
			if err != nil {
				log.Error().Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("nft %s: check ingestion log: %w", nftID, err)
			}
			if done && !opts.Force {
				log.Info().Bool("skipped", true).Msg("already ingested")
				return nil
			}

			txs, events, err := fetchAndScan(gctx, dial, nftID, opts.Isolate)
			if err != nil {
				log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("nft failed")
				return fmt.Errorf("nft %s: %w", nftID, err)
			}

			// Rows and log entry commit together; an unpublished entry is re-driven next run.
			if err := repo.ReplaceAcceptances(nftID, events, txs); err != nil {
				log.Error().Err(err).Msg("replace acceptances failed")
				return fmt.Errorf("nft %s: %w", nftID, err)
			}
			if err := pub.Publish(gctx, events); err != nil {
				log.Error().Err(err).Msg("publish failed")
				return fmt.Errorf("nft %s: %w", nftID, err)
			}
			if err := repo.MarkPublished(nftID); err != nil {
				log.Error().Err(err).Msg("mark published failed")
				return fmt.Errorf("nft %s: mark published: %w", nftID, err)
			}

			log.Info().Int("transactions", txs).Int("events", len(events)).Dur("elapsed", time.Since(start)).Msg("nft done")
			return nil
		})
	}

	return g.Wait()
}

// fetchAndScan reads the full history of nftID and reconstructs its acceptances.
// It returns the number of history entries seen and the events found.
func fetchAndScan(ctx context.Context, dial Dialer, nftID string, isolate bool) (int, []models.AcceptanceEvent, error) {
	f, err := dial(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := f.FetchAll(ctx, nftID)
	if err != nil {
		return len(entries), nil, fmt.Errorf("fetch history: %w", err)
	}

	var scanOpts []reconcile.Option
	if isolate {
		scanOpts = append(scanOpts, reconcile.WithIsolation())
	}
	res, err := reconcile.Scan(entries, scanOpts...)
	if err != nil && !isolate {
		return len(entries), nil, fmt.Errorf("scan: %w", err)
	}
	for _, fail := range res.Failures {
		logger.L().Warn().Str("nft_id", nftID).Int("entry", fail.Index).Str("tx_hash", fail.TxHash).Err(fail.Err).Msg("skipping malformed history entry")
	}
	return len(entries), res.Events, nil
}

// resolveIDs validates explicit ids or loads the catalogue when none are given.
func resolveIDs(repo storage.AcceptancesRepository, explicit []string) ([]string, error) {
	ids := explicit
	if len(ids) == 0 {
		var err error
		ids, err = repo.ListNFTokenIDs()
		if err != nil {
			return nil, fmt.Errorf("list nftokens: %w", err)
		}
	}

	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	var errs []error
	for _, raw := range ids {
		id, err := models.NormalizeNFTokenID(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", raw, err))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
