package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"s2j/internal/domain"
	"s2j/internal/service"
)

// SyncHandler serves target listing and the send pipeline.
type SyncHandler struct {
	sync *service.SyncService
}

func NewSyncHandler(sync *service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

func parseItemType(raw string) (domain.TargetItemType, bool) {
	switch raw {
	case "quotes", "Quote", "quote":
		return domain.TargetQuote, true
	case "jobs", "Job", "job":
		return domain.TargetJob, true
	default:
		return "", false
	}
}

// ListTargets returns the complete list of quotes or jobs for selection.
func (h *SyncHandler) ListTargets(c *gin.Context) {
	itemType, ok := parseItemType(c.DefaultQuery("item_type", "jobs"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_ITEM_TYPE", "item_type must be quotes or jobs")
		return
	}
	items, err := h.sync.ListTargets(c.Request.Context(), itemType)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

type sendRequest struct {
	ExportIDs   []string           `json:"export_ids" binding:"required,min=1"`
	ItemID      string             `json:"item_id" binding:"required"`
	ItemType    string             `json:"item_type" binding:"required"`
	Quantity    float64            `json:"quantity"`
	Multipliers map[string]float64 `json:"multipliers"`
	AllowResend bool               `json:"allow_resend"`
}

// Send pushes the named exports onto a quote or job.
func (h *SyncHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	itemType, ok := parseItemType(req.ItemType)
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_ITEM_TYPE", "item_type must be Quote or Job")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	exportIDs := make([]uuid.UUID, 0, len(req.ExportIDs))
	for _, raw := range req.ExportIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_EXPORT_ID", "export_ids must be UUIDs")
			return
		}
		exportIDs = append(exportIDs, id)
	}

	result, err := h.sync.Send(c.Request.Context(), service.SendInput{
		ExportIDs:   exportIDs,
		TargetID:    req.ItemID,
		TargetType:  itemType,
		UIQuantity:  req.Quantity,
		Multipliers: req.Multipliers,
		AllowResend: req.AllowResend,
	})
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, result)
}

type clearRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	ItemType string `json:"item_type" binding:"required"`
}

// Clear deletes every previously synced line item from a quote or job.
func (h *SyncHandler) Clear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	itemType, ok := parseItemType(req.ItemType)
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_ITEM_TYPE", "item_type must be Quote or Job")
		return
	}
	deleted, err := h.sync.ClearSentItems(c.Request.Context(), itemType, req.ItemID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}
