package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orchestrarfp/gotender/internal/doctext"
	"github.com/orchestrarfp/gotender/internal/domain"
	"github.com/orchestrarfp/gotender/internal/match"
	"github.com/orchestrarfp/gotender/internal/pricing"
)

// emptyResultMessage is surfaced when no tenders are available at all.
const emptyResultMessage = "no tenders found, consider force refresh"

// maxUploadBytes bounds uploaded proposal documents.
const maxUploadBytes = 20 * 1024 * 1024 // 20 MB

// TenderService is the facade surface the handlers consume.
type TenderService interface {
	GetTenders(ctx context.Context, forceRefresh bool) []domain.TenderRecord
}

// tendersResponse is the payload for tender listing endpoints.
type tendersResponse struct {
	Tenders []domain.TenderRecord `json:"tenders"`
	Count   int                   `json:"count"`
	Message string                `json:"message,omitempty"`
}

// matchRequest is the JSON body accepted by the match endpoint.
type matchRequest struct {
	Query     string  `json:"query"`
	BasePrice float64 `json:"base_price"`
}

// matchResponse pairs the relevance ranking with the price suggestion.
type matchResponse struct {
	QueryExcerpt string             `json:"query_excerpt"`
	Match        match.Result       `json:"match"`
	Suggestion   pricing.Suggestion `json:"suggestion"`
}

// GetTenders serves the current tender set, cache-first. Pass ?refresh=true
// to force a live discovery run.
func (h *Handlers) GetTenders(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	records := h.service.GetTenders(c.Request.Context(), forceRefresh)

	h.respondTenders(c, records)
}

// Refresh always runs live discovery and serves the result.
func (h *Handlers) Refresh(c *gin.Context) {
	records := h.service.GetTenders(c.Request.Context(), true)

	h.respondTenders(c, records)
}

// respondTenders shapes the listing payload, attaching the empty-state
// message when there is nothing to show.
func (h *Handlers) respondTenders(c *gin.Context, records []domain.TenderRecord) {
	resp := tendersResponse{Tenders: records, Count: len(records)}
	if len(records) == 0 {
		resp.Tenders = []domain.TenderRecord{}
		resp.Message = emptyResultMessage
	}

	c.JSON(http.StatusOK, resp)
}

// Match scores a free-text query (or an uploaded proposal document) against
// the product catalog and synthesizes a price suggestion. The query comes
// either from a JSON body or from a multipart "document" upload.
func (h *Handlers) Match(c *gin.Context) {
	query, basePrice, ok := h.matchInput(c)
	if !ok {
		return
	}

	result := match.Match(query, h.catalog)
	suggestion := pricing.Suggest(result.BestPercent, basePrice)

	c.JSON(http.StatusOK, matchResponse{
		QueryExcerpt: excerpt(query),
		Match:        result,
		Suggestion:   suggestion,
	})
}

// matchInput resolves the query text and base price from the request. A
// false return means an error response has already been written.
func (h *Handlers) matchInput(c *gin.Context) (query string, basePrice float64, ok bool) {
	basePrice = h.basePrice

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		query, ok = h.uploadedText(c)
		return query, basePrice, ok
	}

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", 0, false
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return "", 0, false
	}

	if req.BasePrice > 0 {
		basePrice = req.BasePrice
	}

	return req.Query, basePrice, true
}

// uploadedText extracts plain text from the uploaded proposal document.
func (h *Handlers) uploadedText(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document upload is required"})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload"})
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return "", false
	}

	return doctext.FromBytes(data, fileHeader.Filename), true
}

// excerpt bounds the echoed query text.
func excerpt(query string) string {
	const limit = 200

	runes := []rune(query)
	if len(runes) <= limit {
		return query
	}
	return string(runes[:limit]) + "..."
}
