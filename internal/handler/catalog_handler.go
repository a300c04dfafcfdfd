package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s2j/internal/domain"
	"s2j/internal/service"
)

// CatalogHandler serves catalog pricing CRUD.
type CatalogHandler struct {
	catalogs *service.CatalogService
}

func NewCatalogHandler(catalogs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.catalogs.List(c.Request.Context())
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, entries)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	entry, err := h.catalogs.Get(c.Request.Context(), c.Param("catalogId"))
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, entry)
}

type catalogUpsertRequest struct {
	Brand      *string  `json:"brand"`
	Multiplier *float64 `json:"multiplier"`
	Margin     *float64 `json:"margin"`
}

// Upsert saves pricing for one catalog and returns the stored entry.
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var req catalogUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Multiplier != nil && *req.Multiplier <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_MULTIPLIER", "multiplier must be positive")
		return
	}

	entry := &domain.CatalogEntry{
		CatalogID:  c.Param("catalogId"),
		Brand:      req.Brand,
		Multiplier: req.Multiplier,
		Margin:     req.Margin,
	}
	saved, err := h.catalogs.SetPricing(c.Request.Context(), entry)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, saved)
}
