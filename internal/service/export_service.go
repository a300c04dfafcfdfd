package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"s2j/internal/domain"
	"s2j/internal/port"
	"s2j/internal/saberis"
)

// IngestResult reports one ingestion run.
type IngestResult struct {
	Status  domain.IngestStatus  `json:"status"`
	Records []domain.ExportRecord `json:"records"`
}

// EnrichedExport is a manifest row plus catalog data re-derived from the
// stored document, as served to the selection UI.
type EnrichedExport struct {
	domain.ExportRecord
	UniqueKey     string             `json:"unique_key"`
	Catalogs      []string           `json:"catalogs"`
	CostByCatalog map[string]float64 `json:"costs_by_catalog"`
}

// ExportService ingests export documents from the source platform into
// the manifest, storing the raw document in object storage. A shared
// cooldown gate keeps the periodic scheduler and interactive page loads
// from double-scanning the source.
type ExportService struct {
	source   port.ExportSource
	repo     port.ExportRepository
	storage  port.ObjectStorage
	catalogs *CatalogService
	clock    Clock

	bucket    string
	keyPrefix string
	cooldown  time.Duration

	mu             sync.Mutex
	lastIngestedAt time.Time
}

func NewExportService(
	source port.ExportSource,
	repo port.ExportRepository,
	storage port.ObjectStorage,
	catalogs *CatalogService,
	clock Clock,
	bucket, keyPrefix string,
	cooldown time.Duration,
) *ExportService {
	return &ExportService{
		source:    source,
		repo:      repo,
		storage:   storage,
		catalogs:  catalogs,
		clock:     clock,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		cooldown:  cooldown,
	}
}

// Ingest scans the export source and appends one manifest row per
// successfully parsed document. Calls within the cooldown window of the
// last successful scan are skipped without touching the source. A
// document that fails to download or parse is logged and skipped; an
// unreachable source aborts the scan without advancing the gate.
func (s *ExportService) Ingest(ctx context.Context) (*IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.lastIngestedAt.IsZero() && now.Sub(s.lastIngestedAt) < s.cooldown {
		return &IngestResult{Status: domain.IngestSkipped, Records: []domain.ExportRecord{}}, nil
	}

	headers, err := s.source.ListUnexported(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportService.Ingest: %w", err)
	}

	brandFor := s.catalogs.BrandLookup(ctx)
	records := []domain.ExportRecord{}
	seen := make(map[string]bool, len(headers))

	for _, header := range headers {
		if seen[header.GUID] {
			continue
		}
		seen[header.GUID] = true

		raw, err := s.source.FetchDocument(ctx, header.GUID)
		if err != nil {
			log.Printf("exportService: fetch document %s: %v", header.GUID, err)
			continue
		}
		doc, err := saberis.DecodeDocument(raw)
		if err != nil {
			log.Printf("exportService: parse document %s: %v", header.GUID, err)
			continue
		}
		order := saberis.ParseOrder(doc, brandFor)

		key := path.Join(s.keyPrefix, header.GUID+".json")
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        bytes.NewReader(raw),
			ContentType: "application/json",
		}); err != nil {
			log.Printf("exportService: store document %s: %v", header.GUID, err)
			continue
		}

		record := domain.ExportRecord{
			ID:              uuid.New(),
			SourceGUID:      header.GUID,
			StoredPath:      key,
			IngestedAt:      now,
			ExportDate:      order.CreatedAt.Format("2006-01-02"),
			CustomerName:    order.CustomerName,
			Username:        order.Username,
			ShippingAddress: order.ShippingAddress,
			SentToJobber:    false,
		}
		if err := s.repo.Create(ctx, &record); err != nil {
			log.Printf("exportService: record document %s: %v", header.GUID, err)
			continue
		}
		records = append(records, record)
	}

	s.lastIngestedAt = now
	return &IngestResult{Status: domain.IngestCompleted, Records: records}, nil
}

// List returns a page of manifest rows enriched with catalog and cost
// data parsed from each stored document. A row whose document cannot be
// read back is returned without enrichment rather than dropped.
func (s *ExportService) List(ctx context.Context, offset, limit int) ([]EnrichedExport, int, error) {
	records, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("exportService.List: %w", err)
	}

	brandFor := s.catalogs.BrandLookup(ctx)
	enriched := make([]EnrichedExport, 0, len(records))
	for _, record := range records {
		item := EnrichedExport{ExportRecord: record}
		raw, err := s.storage.Download(ctx, s.bucket, record.StoredPath)
		if err != nil {
			log.Printf("exportService: enrich %s: download: %v", record.ID, err)
			enriched = append(enriched, item)
			continue
		}
		doc, err := saberis.DecodeDocument(raw)
		if err != nil {
			log.Printf("exportService: enrich %s: parse: %v", record.ID, err)
			enriched = append(enriched, item)
			continue
		}
		order := saberis.ParseOrder(doc, brandFor)
		item.UniqueKey = order.UniqueKey()
		item.Catalogs = order.Catalogs
		item.CostByCatalog = order.CostByCatalog
		enriched = append(enriched, item)
	}
	return enriched, total, nil
}

// Get loads one manifest row.
func (s *ExportService) Get(ctx context.Context, id uuid.UUID) (*domain.ExportRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Prune removes all but the keep most recent manifest rows and deletes
// their stored documents. Storage deletions are best-effort.
func (s *ExportService) Prune(ctx context.Context, keep int) (int, error) {
	records, _, err := s.repo.List(ctx, keep, 10000)
	if err != nil {
		return 0, fmt.Errorf("exportService.Prune: %w", err)
	}
	for _, record := range records {
		if err := s.storage.Delete(ctx, s.bucket, record.StoredPath); err != nil {
			log.Printf("exportService: prune: delete %s: %v", record.StoredPath, err)
		}
	}
	pruned, err := s.repo.Prune(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("exportService.Prune: %w", err)
	}
	return pruned, nil
}
