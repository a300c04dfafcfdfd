package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"s2j/internal/domain"
	"s2j/internal/jobber"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var validationErr *jobber.ValidationError
	switch {
	case errors.Is(err, domain.ErrExportNotFound):
		return http.StatusNotFound, "EXPORT_NOT_FOUND", "export record not found"
	case errors.Is(err, domain.ErrCatalogNotFound):
		return http.StatusNotFound, "CATALOG_NOT_FOUND", "catalog not found"
	case errors.Is(err, domain.ErrMappingNotFound):
		return http.StatusNotFound, "MAPPING_NOT_FOUND", "client mapping not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrAlreadySent):
		return http.StatusConflict, "ALREADY_SENT", "export was already sent; confirm re-send to proceed"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be a positive number"
	case errors.Is(err, domain.ErrUnsupportedItemType):
		return http.StatusBadRequest, "UNSUPPORTED_ITEM_TYPE", "item type must be Quote or Job"
	case errors.Is(err, domain.ErrSourceUnreachable):
		return http.StatusBadGateway, "SOURCE_UNREACHABLE", "export source is unreachable"
	case errors.Is(err, domain.ErrMappingCreationFailed):
		return http.StatusBadGateway, "MAPPING_CREATION_FAILED", "could not create client in target system"
	case errors.Is(err, domain.ErrRetryBudgetExhausted):
		return http.StatusBadGateway, "RETRY_BUDGET_EXHAUSTED", "target system kept failing; operators have been alerted"
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, "TARGET_VALIDATION_FAILED", validationErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}
