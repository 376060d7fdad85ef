//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/guttosm/xnftpulse/internal/domain/models"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "xnftpulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=xnftpulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "xnftpulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedAcceptances(t *testing.T, repo AcceptancesRepository) {
	t.Helper()
	xrp := func(drops int64) models.Amount { return models.NewDropsAmount(drops) }
	events := []models.AcceptanceEvent{
		{NFTokenID: testNFT, LedgerIndex: 100, Date: 1000, Seller: "rA", Buyer: "rB", Price: xrp(5000000), TxHash: "H1", SellOfferIndex: "S1"},
		{NFTokenID: testNFT, LedgerIndex: 200, Date: 2000, Seller: "rB", Buyer: "rC", Price: xrp(9000000), TxHash: "H2", SellOfferIndex: "S2", BuyOfferIndex: "B2", Crossed: true},
		{NFTokenID: testNFT, LedgerIndex: 300, Date: 3000, Seller: "rC", Buyer: "rD",
			Price: models.Amount{Value: decimal.RequireFromString("42.5"), Currency: "USD", Issuer: "rIssuer"}, TxHash: "H3", SellOfferIndex: "S3"},
		{NFTokenID: testNFT, LedgerIndex: 400, Date: 4000, Seller: "rD", Buyer: "rE", Price: xrp(7000000), TxHash: "H4", SellOfferIndex: "S4"},
	}
	if err := repo.ReplaceAcceptances(testNFT, events, 10); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewAcceptancesRepository(db)
	seedAcceptances(t, repo)

	cases := []struct {
		name      string
		limit     int
		wantFirst string
		wantLen   int
	}{
		{name: "all rows newest first", limit: 10, wantFirst: "H4", wantLen: 4},
		{name: "limited", limit: 2, wantFirst: "H4", wantLen: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.GetAcceptancesByNFT(testNFT, tc.limit)
			if err != nil {
				t.Fatalf("GetAcceptancesByNFT err: %v", err)
			}
			if len(got) != tc.wantLen || got[0].TxHash != tc.wantFirst {
				t.Fatalf("got %d rows (first=%s), want %d (first=%s)", len(got), got[0].TxHash, tc.wantLen, tc.wantFirst)
			}
		})
	}

	t.Run("round trip of optional fields", func(t *testing.T) {
		got, err := repo.GetAcceptancesByNFT(testNFT, 10)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		issued := got[1]
		if issued.Price.Currency != "USD" || issued.Price.Issuer != "rIssuer" || issued.Price.Value.String() != "42.5" {
			t.Fatalf("unexpected issued price: %+v", issued.Price)
		}
		crossed := got[2]
		if !crossed.Crossed || crossed.BuyOfferIndex != "B2" {
			t.Fatalf("unexpected crossed row: %+v", crossed)
		}
		if got[0].BuyOfferIndex != "" {
			t.Fatalf("NULL buy offer should read back empty, got %q", got[0].BuyOfferIndex)
		}
	})

	t.Run("summary", func(t *testing.T) {
		sum, err := repo.GetSummaryByNFT(testNFT)
		if err != nil || sum == nil {
			t.Fatalf("summary: sum=%+v err=%v", sum, err)
		}
		if sum.Sales != 4 || sum.MaxPrice.String() != "9000000" || sum.LastPrice.String() != "7000000" {
			t.Fatalf("unexpected summary: %+v", sum)
		}
		if !sum.FirstSaleAt.Equal(models.RippleTime(1000)) || !sum.LastSaleAt.Equal(models.RippleTime(4000)) {
			t.Fatalf("unexpected sale window: %v .. %v", sum.FirstSaleAt, sum.LastSaleAt)
		}

		none, err := repo.GetSummaryByNFT("UNKNOWN")
		if err != nil || none != nil {
			t.Fatalf("want nil summary, got %+v err=%v", none, err)
		}
	})

	t.Run("nftokens catalogue", func(t *testing.T) {
		if _, err := db.Exec(`INSERT INTO nftokens (nft_id, issuer, taxon) VALUES ($1, 'rIssuer', 7)`, testNFT); err != nil {
			t.Fatalf("insert nftoken: %v", err)
		}
		ids, err := repo.ListNFTokenIDs()
		if err != nil || len(ids) != 1 || ids[0] != testNFT {
			t.Fatalf("unexpected ids=%v err=%v", ids, err)
		}
	})

	countRows := func(t *testing.T, nftID string) int {
		t.Helper()
		var cnt int
		if err := db.QueryRow("SELECT COUNT(*) FROM accepted_offers WHERE nft_id=$1", nftID).Scan(&cnt); err != nil {
			t.Fatalf("count: %v", err)
		}
		return cnt
	}

	t.Run("ingestion log counts only once published", func(t *testing.T) {
		ok, err := repo.HasIngestionForNFT(testNFT)
		if err != nil || ok {
			t.Fatalf("unpublished entry should not count, got ok=%v err=%v", ok, err)
		}
		if err := repo.MarkPublished(testNFT); err != nil {
			t.Fatalf("mark published: %v", err)
		}
		ok, err = repo.HasIngestionForNFT(testNFT)
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
		if err := repo.MarkPublished("UNKNOWN"); err == nil {
			t.Fatalf("expected error marking an unknown NFT")
		}
	})

	t.Run("replace is idempotent and resets published", func(t *testing.T) {
		events, err := repo.GetAcceptancesByNFT(testNFT, 10)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if err := repo.ReplaceAcceptances(testNFT, events, 12); err != nil {
			t.Fatalf("replace: %v", err)
		}
		if n := countRows(t, testNFT); n != 4 {
			t.Fatalf("want 4 rows after replace, got %d", n)
		}
		var txCount int
		if err := db.QueryRow("SELECT tx_count FROM ingestion_log WHERE nft_id=$1", testNFT).Scan(&txCount); err != nil || txCount != 12 {
			t.Fatalf("tx_count=%d err=%v", txCount, err)
		}
		ok, err := repo.HasIngestionForNFT(testNFT)
		if err != nil || ok {
			t.Fatalf("replaced entry should be unpublished, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("duplicate tx hash is ignored", func(t *testing.T) {
		dup := models.AcceptanceEvent{NFTokenID: "OTHER", LedgerIndex: 100, Date: 1000, Seller: "rA", Buyer: "rB",
			Price: models.NewDropsAmount(1), TxHash: "H1", SellOfferIndex: "S1"}
		if err := repo.ReplaceAcceptances("OTHER", []models.AcceptanceEvent{dup}, 1); err != nil {
			t.Fatalf("replace: %v", err)
		}
		if n := countRows(t, "OTHER"); n != 0 {
			t.Fatalf("duplicate tx_hash should be skipped, got %d rows", n)
		}
	})

	t.Run("replace with no events clears rows", func(t *testing.T) {
		if err := repo.ReplaceAcceptances(testNFT, nil, 12); err != nil {
			t.Fatalf("replace: %v", err)
		}
		if n := countRows(t, testNFT); n != 0 {
			t.Fatalf("expected 0 rows after replace, got %d", n)
		}
	})
}
