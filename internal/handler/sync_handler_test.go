package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
	"s2j/internal/handler"
	"s2j/internal/port"
	"s2j/internal/service"
	"s2j/mocks"
)

type syncHandlerFixture struct {
	handler *handler.SyncHandler
	exports *mocks.MockExportRepo
	target  *mocks.MockTargetClient
}

func newSyncHandler() *syncHandlerFixture {
	exports := new(mocks.MockExportRepo)
	storage := new(mocks.MockObjectStorage)
	target := new(mocks.MockTargetClient)
	mappings := service.NewMappingService(new(mocks.MockClientMappingRepo), target)
	catalogs := service.NewCatalogService(new(mocks.MockCatalogRepo), 16, time.Minute)
	alerts := new(mocks.MockAlertSender)
	svc := service.NewSyncService(exports, storage, target, mappings, catalogs, alerts,
		"exports-bucket", 1, time.Millisecond)
	return &syncHandlerFixture{
		handler: handler.NewSyncHandler(svc),
		exports: exports,
		target:  target,
	}
}

func TestSyncHandler_ListTargets_RejectsUnknownType(t *testing.T) {
	f := newSyncHandler()

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodGet, "/api/v1/jobber-items?item_type=invoices", nil)

	f.handler.ListTargets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_ITEM_TYPE", resp.Error.Code)
}

func TestSyncHandler_ListTargets_DefaultsToJobs(t *testing.T) {
	f := newSyncHandler()

	f.target.On("ListItems", mock.Anything, domain.TargetJob, "").
		Return(&port.TargetPage{Items: []port.TargetItem{{ID: "j1", Type: domain.TargetJob}}}, nil)

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodGet, "/api/v1/jobber-items", nil)

	f.handler.ListTargets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	f.target.AssertExpectations(t)
}

func TestSyncHandler_Send_RejectsMalformedBody(t *testing.T) {
	f := newSyncHandler()

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPost, "/api/v1/send-to-jobber", []byte(`{"item_id": "q1"}`))

	f.handler.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_Send_RejectsBadExportID(t *testing.T) {
	f := newSyncHandler()

	body, _ := json.Marshal(map[string]any{
		"export_ids": []string{"not-a-uuid"},
		"item_id":    "q1",
		"item_type":  "Quote",
	})
	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPost, "/api/v1/send-to-jobber", body)

	f.handler.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_EXPORT_ID", resp.Error.Code)
}

func TestSyncHandler_Send_AlreadySentConflicts(t *testing.T) {
	f := newSyncHandler()

	id := uuid.New()
	f.exports.On("GetByID", mock.Anything, id).
		Return(&domain.ExportRecord{ID: id, SentToJobber: true}, nil)

	body, _ := json.Marshal(map[string]any{
		"export_ids": []string{id.String()},
		"item_id":    "q1",
		"item_type":  "Quote",
	})
	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPost, "/api/v1/send-to-jobber", body)

	f.handler.Send(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ALREADY_SENT", resp.Error.Code)
}

func TestSyncHandler_Clear(t *testing.T) {
	f := newSyncHandler()

	f.target.On("GetDetail", mock.Anything, domain.TargetQuote, "q1").
		Return(&port.TargetDetail{ID: "q1", LineItems: []port.TargetLineItem{
			{ID: "li-1", Name: "Cabinet | S2J(ab12cd)"},
		}}, nil)
	f.target.On("DeleteLineItems", mock.Anything, domain.TargetQuote, "q1", []string{"li-1"}).
		Return(nil)

	body, _ := json.Marshal(map[string]any{"item_id": "q1", "item_type": "Quote"})
	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPost, "/api/v1/clear-s2j-entries", body)

	f.handler.Clear(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Deleted int `json:"deleted"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Deleted)
	f.target.AssertExpectations(t)
}
