package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"s2j/internal/domain"
	"s2j/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetByID(ctx context.Context, catalogID string) (*domain.CatalogEntry, error) {
	var entry domain.CatalogEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM catalogs WHERE catalog_id = $1", catalogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *catalogRepo) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	entries := []domain.CatalogEntry{}
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM catalogs ORDER BY catalog_id ASC")
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.List: %w", err)
	}
	return entries, nil
}

func (r *catalogRepo) Upsert(ctx context.Context, entry *domain.CatalogEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO catalogs (catalog_id, brand, multiplier, margin, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (catalog_id) DO UPDATE SET
		brand = EXCLUDED.brand,
		multiplier = EXCLUDED.multiplier,
		margin = EXCLUDED.margin,
		updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		entry.CatalogID, entry.Brand, entry.Multiplier, entry.Margin, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalogRepo.Upsert: %w", err)
	}
	return nil
}
