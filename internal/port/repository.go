package port

import (
	"context"

	"github.com/google/uuid"

	"s2j/internal/domain"
)

// ExportRepository defines the contract for manifest persistence. The
// manifest is append-only except for the sent flag, which only ever
// transitions false to true.
type ExportRepository interface {
	Create(ctx context.Context, record *domain.ExportRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExportRecord, int, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	Prune(ctx context.Context, keep int) (int, error)
}

// ClientMappingRepository defines the contract for customer identity
// mapping persistence. Create must be an insert-if-absent so concurrent
// resolutions of the same name cannot produce two rows.
type ClientMappingRepository interface {
	GetByName(ctx context.Context, customerName string) (*domain.ClientMapping, error)
	Create(ctx context.Context, mapping *domain.ClientMapping) error
}

// CatalogRepository defines the contract for catalog pricing persistence.
type CatalogRepository interface {
	GetByID(ctx context.Context, catalogID string) (*domain.CatalogEntry, error)
	List(ctx context.Context) ([]domain.CatalogEntry, error)
	Upsert(ctx context.Context, entry *domain.CatalogEntry) error
}
