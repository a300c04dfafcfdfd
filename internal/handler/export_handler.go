package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"s2j/internal/service"
)

// ExportHandler serves manifest ingestion and listing.
type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// List runs an ingestion pass (subject to the cooldown gate) and then
// returns the manifest, newest first, enriched with catalog data.
func (h *ExportHandler) List(c *gin.Context) {
	if _, err := h.exports.Ingest(c.Request.Context()); err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.exports.List(c.Request.Context(), offset, limit)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Ingest triggers one ingestion pass explicitly and reports whether it
// ran or was skipped by the cooldown gate.
func (h *ExportHandler) Ingest(c *gin.Context) {
	result, err := h.exports.Ingest(c.Request.Context())
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, result)
}

// Prune deletes all but the most recent exports.
func (h *ExportHandler) Prune(c *gin.Context) {
	keep, err := strconv.Atoi(c.DefaultQuery("keep", "3"))
	if err != nil || keep < 0 {
		RespondError(c, 400, "INVALID_KEEP", "keep must be a non-negative integer")
		return
	}
	pruned, err := h.exports.Prune(c.Request.Context(), keep)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, gin.H{"pruned": pruned})
}
