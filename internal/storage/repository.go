package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AcceptancesRepository defines contract for DB operations.
type AcceptancesRepository interface {
	ReplaceAcceptances(nftID string, events []models.AcceptanceEvent, txCount int) error
	HasIngestionForNFT(nftID string) (bool, error)
	MarkPublished(nftID string) error
	ListNFTokenIDs() ([]string, error)
	GetAcceptancesByNFT(nftID string, limit int) ([]models.AcceptanceEvent, error)
	GetSummaryByNFT(nftID string) (*models.Summary, error)
}

type acceptancesRepository struct {
	db *sql.DB
}

func NewAcceptancesRepository(db *sql.DB) AcceptancesRepository {
	return &acceptancesRepository{db: db}
}

// acceptanceColumns is the column order shared by the staging COPY and the final insert.
var acceptanceColumns = []string{
	"nft_id",
	"ledger_index",
	"date",
	"close_time",
	"seller",
	"buyer",
	"acceptor",
	"price_value",
	"price_currency",
	"price_issuer",
	"tx_hash",
	"sell_offer_index",
	"buy_offer_index",
	"crossed",
}

const (
	createStage = `CREATE TEMP TABLE accepted_offers_stage
		(LIKE accepted_offers INCLUDING DEFAULTS) ON COMMIT DROP`
	// rows already stored under the same tx_hash are left untouched
	mergeStage = `INSERT INTO accepted_offers (%[1]s)
		SELECT %[1]s FROM accepted_offers_stage
		ON CONFLICT (tx_hash) DO NOTHING`
)

// ReplaceAcceptances stores the full result of one NFT ingestion atomically:
// previous rows of the NFT are removed, events are inserted and the ingestion
// log is upserted as not yet published. Either all of it lands or none.
func (r *acceptancesRepository) ReplaceAcceptances(nftID string, events []models.AcceptanceEvent, txCount int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM accepted_offers WHERE nft_id = $1`, nftID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete previous acceptances: %w", err)
	}
	if err := copyAcceptances(tx, events); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert acceptances: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO ingestion_log (nft_id, tx_count, event_count, published)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (nft_id)
		DO UPDATE SET tx_count = EXCLUDED.tx_count,
					  event_count = EXCLUDED.event_count,
					  published = FALSE,
					  ingested_at = NOW()
	`, nftID, txCount, len(events)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("upsert ingestion log: %w", err)
	}

	return tx.Commit()
}

// copyAcceptances streams events into a transaction-scoped staging table with
// COPY and merges them into accepted_offers. The caller owns tx.
func copyAcceptances(tx *sql.Tx, events []models.AcceptanceEvent) error {
	if len(events) == 0 {
		return nil
	}

	if _, err := tx.Exec(createStage); err != nil {
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("accepted_offers_stage", acceptanceColumns...))
	if err != nil {
		return err
	}

	// optional references are stored as NULL rather than ''
	toNullString := func(s string) interface{} {
		if s == "" {
			return nil
		}
		return s
	}

	for _, ev := range events {
		if _, err := stmt.Exec(
			ev.NFTokenID,
			ev.LedgerIndex,
			ev.Date,
			ev.Time(),
			ev.Seller,
			ev.Buyer,
			toNullString(ev.Acceptor),
			ev.Price.Value,
			ev.Price.Currency,
			toNullString(ev.Price.Issuer),
			toNullString(ev.TxHash),
			toNullString(ev.SellOfferIndex),
			toNullString(ev.BuyOfferIndex),
			ev.Crossed,
		); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	_, err = tx.Exec(fmt.Sprintf(mergeStage, strings.Join(acceptanceColumns, ", ")))
	return err
}

// HasIngestionForNFT reports whether the NFT was ingested and its events published.
func (r *acceptancesRepository) HasIngestionForNFT(nftID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE nft_id = $1 AND published)`, nftID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// MarkPublished flags the ingestion log entry of an NFT as published.
func (r *acceptancesRepository) MarkPublished(nftID string) error {
	res, err := r.db.Exec(`UPDATE ingestion_log SET published = TRUE WHERE nft_id = $1`, nftID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no ingestion log entry for %s", nftID)
	}
	return nil
}

// ListNFTokenIDs returns the catalogue of NFTs to ingest.
func (r *acceptancesRepository) ListNFTokenIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT nft_id FROM nftokens ORDER BY nft_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetAcceptancesByNFT returns up to limit acceptances of an NFT, newest first.
func (r *acceptancesRepository) GetAcceptancesByNFT(nftID string, limit int) ([]models.AcceptanceEvent, error) {
	rows, err := r.db.Query(`
		SELECT nft_id, ledger_index, date, seller, buyer, COALESCE(acceptor, ''),
		       price_value, price_currency, COALESCE(price_issuer, ''),
		       COALESCE(tx_hash, ''), COALESCE(sell_offer_index, ''), COALESCE(buy_offer_index, ''),
		       crossed
		FROM accepted_offers
		WHERE nft_id = $1
		ORDER BY ledger_index DESC, id DESC
		LIMIT $2
	`, nftID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AcceptanceEvent
	for rows.Next() {
		var ev models.AcceptanceEvent
		if err := rows.Scan(
			&ev.NFTokenID,
			&ev.LedgerIndex,
			&ev.Date,
			&ev.Seller,
			&ev.Buyer,
			&ev.Acceptor,
			&ev.Price.Value,
			&ev.Price.Currency,
			&ev.Price.Issuer,
			&ev.TxHash,
			&ev.SellOfferIndex,
			&ev.BuyOfferIndex,
			&ev.Crossed,
		); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// GetSummaryByNFT returns sale count, XRP price extremes and sale window for an NFT.
func (r *acceptancesRepository) GetSummaryByNFT(nftID string) (*models.Summary, error) {
	query := `
		SELECT
			COUNT(*) AS sales,
			(SELECT price_value FROM accepted_offers
			 WHERE nft_id = $1 AND price_currency = 'XRP'
			 ORDER BY ledger_index DESC, id DESC LIMIT 1) AS last_price,
			MAX(price_value) FILTER (WHERE price_currency = 'XRP') AS max_price,
			MIN(close_time) AS first_sale_at,
			MAX(close_time) AS last_sale_at
		FROM accepted_offers
		WHERE nft_id = $1
	`

	var (
		sales     int64
		lastPrice decimal.NullDecimal
		maxPrice  decimal.NullDecimal
		firstAt   sql.NullTime
		lastAt    sql.NullTime
	)
	if err := r.db.QueryRow(query, nftID).Scan(&sales, &lastPrice, &maxPrice, &firstAt, &lastAt); err != nil {
		return nil, err
	}

	// no rows for this NFT
	if sales == 0 {
		return nil, nil
	}

	sum := &models.Summary{NFTokenID: nftID, Sales: sales}
	if lastPrice.Valid {
		sum.LastPrice = lastPrice.Decimal
	}
	if maxPrice.Valid {
		sum.MaxPrice = maxPrice.Decimal
	}
	if firstAt.Valid {
		sum.FirstSaleAt = firstAt.Time.UTC()
	}
	if lastAt.Valid {
		sum.LastSaleAt = lastAt.Time.UTC()
	}
	return sum, nil
}

