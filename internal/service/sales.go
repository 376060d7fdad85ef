package service

import (
	"context"

	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/storage"
)

const (
	DefaultSalesLimit = 100
	MaxSalesLimit     = 1000
)

// SalesService defines business logic for reading reconstructed NFT sales.
type SalesService interface {
	GetSales(ctx context.Context, nftID string, limit int) ([]models.AcceptanceEvent, error)
	GetSummary(ctx context.Context, nftID string) (*models.Summary, error)
}

type salesService struct {
	repo storage.AcceptancesRepository
}

func NewSalesService(repo storage.AcceptancesRepository) SalesService {
	return &salesService{repo: repo}
}

// GetSales returns the newest sales first. limit <= 0 selects DefaultSalesLimit
// and larger values are capped at MaxSalesLimit.
func (s *salesService) GetSales(ctx context.Context, nftID string, limit int) ([]models.AcceptanceEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultSalesLimit
	case limit > MaxSalesLimit:
		limit = MaxSalesLimit
	}
	return s.repo.GetAcceptancesByNFT(nftID, limit)
}

func (s *salesService) GetSummary(ctx context.Context, nftID string) (*models.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetSummaryByNFT(nftID)
}
