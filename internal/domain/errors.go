package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrExportNotFound        = errors.New("export record not found")
	ErrCatalogNotFound       = errors.New("catalog entry not found")
	ErrMappingNotFound       = errors.New("client mapping not found")
	ErrSourceUnreachable     = errors.New("export source unreachable")
	ErrMappingCreationFailed = errors.New("client mapping creation failed")
	ErrRetryBudgetExhausted  = errors.New("write retry budget exhausted")
	ErrAlreadySent           = errors.New("export already sent to jobber")
	ErrInvalidQuantity       = errors.New("quantity multiplier must be positive")
	ErrUnsupportedItemType   = errors.New("unsupported target item type")
)
