package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/xnftpulse/internal/domain/dto"
	"github.com/guttosm/xnftpulse/internal/domain/models"
	"github.com/guttosm/xnftpulse/internal/service"
)

// Handler provides HTTP handlers for NFT sales endpoints.
//
// Responsibilities:
//   - Validate the nft_id path parameter and query parameters
//   - Interact with the service layer for data access
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.SalesService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.SalesService): Service dependency used for querying sales.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.SalesService) *Handler {
	return &Handler{svc: svc}
}

// GetSales handles GET /api/v1/nfts/{nft_id}/sales requests.
//
// GetSales godoc
// @Summary      List sales of an NFT
// @Description  Returns the reconstructed offer acceptances of an NFT, newest first
// @Tags         sales
// @Produce      json
// @Param        nft_id  path      string  true   "NFTokenID (64 hex chars)"
// @Param        limit   query     int     false  "Max rows (default 100, max 1000)" example(50)
// @Success      200     {array}   dto.SaleResponse    "Success"
// @Failure      400     {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse   "Not Found"
// @Failure      500     {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/nfts/{nft_id}/sales [get]
func (h *Handler) GetSales(c *gin.Context) {
	// ─── Validate "nft_id" param ──────────────────────────────
	nftID, ok := nftIDParam(c)
	if !ok {
		return
	}

	// ─── Parse optional "limit" param ─────────────────────────
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be a positive integer", err))
			return
		}
		limit = n
	}

	// ─── Query service (with request context) ─────────────────
	sales, err := h.svc.GetSales(c.Request.Context(), nftID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch sales", err))
		return
	}
	if len(sales) == 0 {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no sales found", nil))
		return
	}

	// ─── Build and return response DTOs ───────────────────────
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, ev := range sales {
		resp = append(resp, dto.NewSaleResponse(ev))
	}
	c.JSON(http.StatusOK, resp)
}

// GetSummary handles GET /api/v1/nfts/{nft_id}/summary requests.
//
// GetSummary godoc
// @Summary      Sales summary of an NFT
// @Description  Returns sale count, last and max XRP price and the sale window
// @Tags         sales
// @Produce      json
// @Param        nft_id  path      string  true  "NFTokenID (64 hex chars)"
// @Success      200     {object}  dto.SummaryResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse    "Not Found"
// @Failure      500     {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/nfts/{nft_id}/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	nftID, ok := nftIDParam(c)
	if !ok {
		return
	}

	sum, err := h.svc.GetSummary(c.Request.Context(), nftID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch summary", err))
		return
	}
	if sum == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no sales found", nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(*sum))
}

// nftIDParam validates and normalizes the nft_id path parameter,
// writing a 400 response when it is malformed.
func nftIDParam(c *gin.Context) (string, bool) {
	id, err := models.NormalizeNFTokenID(c.Param("nft_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid nft_id", err))
		return "", false
	}
	return id, true
}
