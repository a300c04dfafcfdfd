package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"s2j/internal/domain"
	"s2j/internal/port"
	"s2j/internal/saberis"
)

// CatalogService serves catalog pricing with a small expiring cache in
// front of the repository. Brand lookups happen once per text line
// during parsing, so they must be cheap.
type CatalogService struct {
	repo  port.CatalogRepository
	cache *expirable.LRU[string, *domain.CatalogEntry]
}

func NewCatalogService(repo port.CatalogRepository, cacheSize int, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: expirable.NewLRU[string, *domain.CatalogEntry](cacheSize, nil, cacheTTL),
	}
}

// Get returns the catalog entry for catalogID, consulting the cache
// first. A missing catalog is domain.ErrCatalogNotFound.
func (s *CatalogService) Get(ctx context.Context, catalogID string) (*domain.CatalogEntry, error) {
	if entry, ok := s.cache.Get(catalogID); ok {
		return entry, nil
	}
	entry, err := s.repo.GetByID(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(catalogID, entry)
	return entry, nil
}

// List returns every known catalog entry, bypassing the cache.
func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	return s.repo.List(ctx)
}

// SetPricing upserts a catalog entry and drops any cached copy.
func (s *CatalogService) SetPricing(ctx context.Context, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("catalogService.SetPricing: %w", err)
	}
	s.cache.Remove(entry.CatalogID)
	return s.repo.GetByID(ctx, entry.CatalogID)
}

// BrandLookup returns a saberis.BrandLookup bound to ctx. Unknown
// catalogs resolve to no brand.
func (s *CatalogService) BrandLookup(ctx context.Context) saberis.BrandLookup {
	return func(catalogID string) (string, bool) {
		entry, err := s.Get(ctx, catalogID)
		if err != nil {
			if !errors.Is(err, domain.ErrCatalogNotFound) {
				log.Printf("catalogService: brand lookup for %q: %v", catalogID, err)
			}
			return "", false
		}
		if entry.Brand == nil || *entry.Brand == "" {
			return "", false
		}
		return *entry.Brand, true
	}
}

// Multipliers resolves cost multipliers for the given catalog ids.
// Catalogs without stored pricing are omitted; the transformer applies
// 1.0 for absent keys.
func (s *CatalogService) Multipliers(ctx context.Context, catalogIDs []string) map[string]float64 {
	multipliers := make(map[string]float64, len(catalogIDs))
	for _, id := range catalogIDs {
		entry, err := s.Get(ctx, id)
		if err != nil {
			continue
		}
		if entry.Multiplier != nil {
			multipliers[id] = *entry.Multiplier
		}
	}
	return multipliers
}
