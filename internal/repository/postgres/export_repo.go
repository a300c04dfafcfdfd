package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"s2j/internal/domain"
	"s2j/internal/port"
)

type exportRepo struct {
	db *sqlx.DB
}

// NewExportRepo creates a new PostgreSQL-backed ExportRepository.
func NewExportRepo(db *sqlx.DB) port.ExportRepository {
	return &exportRepo{db: db}
}

func (r *exportRepo) Create(ctx context.Context, record *domain.ExportRecord) error {
	if record.IngestedAt.IsZero() {
		record.IngestedAt = time.Now().UTC()
	}

	query := `INSERT INTO saberis_exports (
		id, source_guid, stored_path, ingested_at,
		export_date, customer_name, username, shipping_address, sent_to_jobber
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8, $9
	)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.SourceGUID, record.StoredPath, record.IngestedAt,
		record.ExportDate, record.CustomerName, record.Username, record.ShippingAddress, record.SentToJobber)
	if err != nil {
		return fmt.Errorf("exportRepo.Create: %w", err)
	}
	return nil
}

func (r *exportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRecord, error) {
	var record domain.ExportRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM saberis_exports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExportNotFound
		}
		return nil, fmt.Errorf("exportRepo.GetByID: %w", err)
	}
	return &record, nil
}

func (r *exportRepo) List(ctx context.Context, offset, limit int) ([]domain.ExportRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM saberis_exports")
	if err != nil {
		return nil, 0, fmt.Errorf("exportRepo.List: count: %w", err)
	}

	records := []domain.ExportRecord{}
	err = r.db.SelectContext(ctx, &records,
		"SELECT * FROM saberis_exports ORDER BY ingested_at DESC OFFSET $1 LIMIT $2",
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("exportRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *exportRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE saberis_exports SET sent_to_jobber = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("exportRepo.MarkSent: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("exportRepo.MarkSent: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrExportNotFound
	}
	return nil
}

// Prune deletes everything but the keep most recently ingested records
// and returns how many rows were removed.
func (r *exportRepo) Prune(ctx context.Context, keep int) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saberis_exports WHERE id NOT IN (
		SELECT id FROM saberis_exports ORDER BY ingested_at DESC LIMIT $1
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("exportRepo.Prune: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("exportRepo.Prune: rows affected: %w", err)
	}
	return int(rows), nil
}
