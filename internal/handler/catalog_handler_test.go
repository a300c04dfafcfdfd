package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
	"s2j/internal/handler"
	"s2j/internal/service"
	"s2j/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCatalogHandler() (*handler.CatalogHandler, *mocks.MockCatalogRepo) {
	repo := new(mocks.MockCatalogRepo)
	svc := service.NewCatalogService(repo, 16, time.Minute)
	return handler.NewCatalogHandler(svc), repo
}

func testContext(w *httptest.ResponseRecorder, method, target string, body []byte) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	var err error
	if body != nil {
		c.Request, err = http.NewRequest(method, target, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request, err = http.NewRequest(method, target, nil)
	}
	if err != nil {
		panic(err)
	}
	return c, r
}

func TestCatalogHandler_Get_Success(t *testing.T) {
	h, repo := newCatalogHandler()

	brand := "KWP"
	repo.On("GetByID", mock.Anything, "KWP_24C1").
		Return(&domain.CatalogEntry{CatalogID: "KWP_24C1", Brand: &brand}, nil)

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodGet, "/api/v1/catalogs/KWP_24C1", nil)
	c.Params = gin.Params{{Key: "catalogId", Value: "KWP_24C1"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCatalogHandler_Get_NotFound(t *testing.T) {
	h, repo := newCatalogHandler()

	repo.On("GetByID", mock.Anything, "MISSING").Return(nil, domain.ErrCatalogNotFound)

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodGet, "/api/v1/catalogs/MISSING", nil)
	c.Params = gin.Params{{Key: "catalogId", Value: "MISSING"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CATALOG_NOT_FOUND", resp.Error.Code)
}

func TestCatalogHandler_Upsert_Success(t *testing.T) {
	h, repo := newCatalogHandler()

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *domain.CatalogEntry) bool {
		return e.CatalogID == "KWP_24C1" && e.Multiplier != nil && *e.Multiplier == 1.2
	})).Return(nil)
	repo.On("GetByID", mock.Anything, "KWP_24C1").
		Return(&domain.CatalogEntry{CatalogID: "KWP_24C1"}, nil)

	body, _ := json.Marshal(map[string]any{"brand": "KWP", "multiplier": 1.2})
	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPut, "/api/v1/catalogs/KWP_24C1", body)
	c.Params = gin.Params{{Key: "catalogId", Value: "KWP_24C1"}}

	h.Upsert(c)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestCatalogHandler_Upsert_RejectsNonPositiveMultiplier(t *testing.T) {
	h, repo := newCatalogHandler()

	body, _ := json.Marshal(map[string]any{"multiplier": -1.0})
	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodPut, "/api/v1/catalogs/KWP_24C1", body)
	c.Params = gin.Params{{Key: "catalogId", Value: "KWP_24C1"}}

	h.Upsert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCatalogHandler_List(t *testing.T) {
	h, repo := newCatalogHandler()

	repo.On("List", mock.Anything).Return([]domain.CatalogEntry{{CatalogID: "A"}, {CatalogID: "B"}}, nil)

	w := httptest.NewRecorder()
	c, _ := testContext(w, http.MethodGet, "/api/v1/catalogs", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    []domain.CatalogEntry `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}
