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

type clientMappingRepo struct {
	db *sqlx.DB
}

// NewClientMappingRepo creates a new PostgreSQL-backed
// ClientMappingRepository.
func NewClientMappingRepo(db *sqlx.DB) port.ClientMappingRepository {
	return &clientMappingRepo{db: db}
}

func (r *clientMappingRepo) GetByName(ctx context.Context, customerName string) (*domain.ClientMapping, error) {
	var mapping domain.ClientMapping
	err := r.db.GetContext(ctx, &mapping,
		"SELECT * FROM client_mappings WHERE customer_name = $1", customerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, fmt.Errorf("clientMappingRepo.GetByName: %w", err)
	}
	return &mapping, nil
}

// Create inserts the mapping unless another resolution already recorded
// one for the same name. The unique constraint on customer_name is the
// last line of defense against concurrent duplicate creation.
func (r *clientMappingRepo) Create(ctx context.Context, mapping *domain.ClientMapping) error {
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO client_mappings (
		customer_name, jobber_client_id, jobber_property_id, created_at
	) VALUES ($1, $2, $3, $4)
	ON CONFLICT (customer_name) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		mapping.CustomerName, mapping.JobberClientID, mapping.JobberPropertyID, mapping.CreatedAt)
	if err != nil {
		return fmt.Errorf("clientMappingRepo.Create: %w", err)
	}
	return nil
}
