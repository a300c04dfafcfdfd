package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"s2j/internal/domain"
	"s2j/internal/jobber"
	"s2j/internal/port"
	"s2j/internal/saberis"
	"s2j/internal/transform"
)

// SendInput describes one send invocation: which manifest rows to push
// and where. Multipliers override the stored catalog pricing for this
// send only.
type SendInput struct {
	ExportIDs   []uuid.UUID
	TargetID    string
	TargetType  domain.TargetItemType
	UIQuantity  float64
	Multipliers map[string]float64
	AllowResend bool
}

// SendResult reports what one successful send changed on the target.
type SendResult struct {
	TargetID      string      `json:"target_id"`
	TargetType    string      `json:"target_type"`
	Added         int         `json:"added"`
	Updated       int         `json:"updated"`
	SentExportIDs []uuid.UUID `json:"sent_export_ids"`
}

// SyncService drives the document-to-target pipeline: parse stored
// documents, build line item payloads, diff them against the target
// quote or job, and issue the writes with retry and alerting.
type SyncService struct {
	exports  port.ExportRepository
	storage  port.ObjectStorage
	target   port.TargetClient
	mappings *MappingService
	catalogs *CatalogService
	alerts   port.AlertSender

	bucket      string
	maxRetries  int
	backoffBase time.Duration
}

func NewSyncService(
	exports port.ExportRepository,
	storage port.ObjectStorage,
	target port.TargetClient,
	mappings *MappingService,
	catalogs *CatalogService,
	alerts port.AlertSender,
	bucket string,
	maxRetries int,
	backoffBase time.Duration,
) *SyncService {
	return &SyncService{
		exports:     exports,
		storage:     storage,
		target:      target,
		mappings:    mappings,
		catalogs:    catalogs,
		alerts:      alerts,
		bucket:      bucket,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Send pushes the named exports' line items onto one target quote or
// job. Already-sent records are refused unless the caller explicitly
// allows a re-send. Transient write failures are retried with
// exponential backoff; exhausting the budget alerts the operator once
// and leaves the records unmarked.
func (s *SyncService) Send(ctx context.Context, input SendInput) (*SendResult, error) {
	if input.UIQuantity <= 0 {
		return nil, fmt.Errorf("syncService.Send: ui quantity %g: %w", input.UIQuantity, domain.ErrInvalidQuantity)
	}
	if input.TargetType != domain.TargetQuote && input.TargetType != domain.TargetJob {
		return nil, fmt.Errorf("syncService.Send: %q: %w", input.TargetType, domain.ErrUnsupportedItemType)
	}

	records := make([]*domain.ExportRecord, 0, len(input.ExportIDs))
	for _, id := range input.ExportIDs {
		record, err := s.exports.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("syncService.Send: load export %s: %w", id, err)
		}
		if record.SentToJobber && !input.AllowResend {
			return nil, fmt.Errorf("syncService.Send: export %s: %w", id, domain.ErrAlreadySent)
		}
		records = append(records, record)
	}

	desired, err := s.buildPayloads(ctx, records, input)
	if err != nil {
		return nil, err
	}

	detail, err := s.target.GetDetail(ctx, input.TargetType, input.TargetID)
	if err != nil {
		return nil, fmt.Errorf("syncService.Send: target detail: %w", err)
	}

	existing := make(map[string]port.TargetLineItem, len(detail.LineItems))
	for _, li := range detail.LineItems {
		existing[li.Name] = li
	}

	toAdd := make([]domain.LineItemPayload, 0, len(desired))
	toUpdate := make([]port.QuantityUpdate, 0)
	for _, item := range desired {
		if prior, ok := existing[item.Name]; ok {
			if prior.Quantity != item.Quantity {
				toUpdate = append(toUpdate, port.QuantityUpdate{LineItemID: prior.ID, Quantity: item.Quantity})
			}
			continue
		}
		if input.TargetType == domain.TargetJob {
			// Jobs carry cost through the products catalog; the line
			// itself is priced at zero and never re-saved.
			item.UnitPrice = 0
			item.SaveToProductsAndServices = false
		}
		toAdd = append(toAdd, item)
	}

	if input.TargetType == domain.TargetJob {
		if err := s.writeWithRetry(ctx, input, "ensure products", func(ctx context.Context) error {
			return s.target.EnsureProducts(ctx, desired)
		}); err != nil {
			return nil, err
		}
	}
	if err := s.writeWithRetry(ctx, input, "update line items", func(ctx context.Context) error {
		return s.target.UpdateLineItemQuantities(ctx, input.TargetType, input.TargetID, toUpdate)
	}); err != nil {
		return nil, err
	}
	if err := s.writeWithRetry(ctx, input, "add line items", func(ctx context.Context) error {
		return s.target.AddLineItems(ctx, input.TargetType, input.TargetID, toAdd)
	}); err != nil {
		return nil, err
	}

	result := &SendResult{
		TargetID:   input.TargetID,
		TargetType: string(input.TargetType),
		Added:      len(toAdd),
		Updated:    len(toUpdate),
	}
	for _, record := range records {
		if err := s.exports.MarkSent(ctx, record.ID); err != nil {
			log.Printf("syncService: mark sent %s: %v", record.ID, err)
			continue
		}
		result.SentExportIDs = append(result.SentExportIDs, record.ID)
	}
	return result, nil
}

// buildPayloads parses each record's stored document, resolves its
// client mapping, and folds all transformed line items into one list
// with same-name quantities summed.
func (s *SyncService) buildPayloads(ctx context.Context, records []*domain.ExportRecord, input SendInput) ([]domain.LineItemPayload, error) {
	brandFor := s.catalogs.BrandLookup(ctx)

	var order []string
	merged := make(map[string]domain.LineItemPayload)
	resolved := make(map[string]bool)

	for _, record := range records {
		raw, err := s.storage.Download(ctx, s.bucket, record.StoredPath)
		if err != nil {
			return nil, fmt.Errorf("syncService.Send: download %s: %w", record.ID, err)
		}
		doc, err := saberis.DecodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("syncService.Send: parse %s: %w", record.ID, err)
		}
		parsed := saberis.ParseOrder(doc, brandFor)

		if !resolved[parsed.CustomerName] {
			if _, err := s.mappings.Resolve(ctx, parsed); err != nil {
				return nil, fmt.Errorf("syncService.Send: %w", err)
			}
			resolved[parsed.CustomerName] = true
		}

		multipliers := s.catalogs.Multipliers(ctx, parsed.Catalogs)
		for id, m := range input.Multipliers {
			multipliers[id] = m
		}

		for _, item := range transform.BuildLineItems(parsed, input.UIQuantity, multipliers) {
			if prior, ok := merged[item.Name]; ok {
				prior.Quantity += item.Quantity
				merged[item.Name] = prior
				continue
			}
			merged[item.Name] = item
			order = append(order, item.Name)
		}
	}

	payloads := make([]domain.LineItemPayload, 0, len(order))
	for _, name := range order {
		payloads = append(payloads, merged[name])
	}
	return payloads, nil
}

// writeWithRetry runs one target write, retrying transient failures
// with exponential backoff. Cancellation is honored between attempts.
// Exhausting the budget alerts the operator and surfaces
// domain.ErrRetryBudgetExhausted; validation failures propagate
// immediately without touching the alert path.
func (s *SyncService) writeWithRetry(ctx context.Context, input SendInput, op string, write func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.backoffBase << (attempt - 1)
			log.Printf("syncService: %s: attempt %d/%d failed, retrying in %s: %v",
				op, attempt, s.maxRetries, backoff, lastErr)
			select {
			case <-ctx.Done():
				return fmt.Errorf("syncService.Send: %s: %w", op, ctx.Err())
			case <-time.After(backoff):
			}
		}
		lastErr = write(ctx)
		if lastErr == nil {
			return nil
		}
		if !jobber.IsTransient(lastErr) {
			return fmt.Errorf("syncService.Send: %s: %w", op, lastErr)
		}
	}

	s.alertFailure(ctx, input, lastErr)
	return fmt.Errorf("syncService.Send: %s: %w: %v", op, domain.ErrRetryBudgetExhausted, lastErr)
}

func (s *SyncService) alertFailure(ctx context.Context, input SendInput, lastErr error) {
	exportIDs := make([]string, 0, len(input.ExportIDs))
	for _, id := range input.ExportIDs {
		exportIDs = append(exportIDs, id.String())
	}
	alert := port.SyncFailureAlert{
		TargetID:   input.TargetID,
		TargetType: string(input.TargetType),
		ExportIDs:  exportIDs,
		Attempts:   s.maxRetries + 1,
		LastError:  lastErr.Error(),
	}
	if err := s.alerts.SendSyncFailureAlert(ctx, alert); err != nil {
		log.Printf("syncService: send failure alert: %v", err)
	}
}

// ListTargets pages through every quote or job on the target system and
// returns the complete list for selection.
func (s *SyncService) ListTargets(ctx context.Context, itemType domain.TargetItemType) ([]port.TargetItem, error) {
	var items []port.TargetItem
	cursor := ""
	for {
		page, err := s.target.ListItems(ctx, itemType, cursor)
		if err != nil {
			return nil, fmt.Errorf("syncService.ListTargets: %w", err)
		}
		items = append(items, page.Items...)
		if !page.HasNextPage || page.NextCursor == "" {
			return items, nil
		}
		cursor = page.NextCursor
	}
}

// ClearSentItems deletes every line item on the target whose name
// carries the sync signature marker, undoing previous sends.
func (s *SyncService) ClearSentItems(ctx context.Context, itemType domain.TargetItemType, id string) (int, error) {
	detail, err := s.target.GetDetail(ctx, itemType, id)
	if err != nil {
		return 0, fmt.Errorf("syncService.ClearSentItems: %w", err)
	}
	var toDelete []string
	for _, li := range detail.LineItems {
		if strings.Contains(li.Name, " | S2J(") {
			toDelete = append(toDelete, li.ID)
		}
	}
	if len(toDelete) == 0 {
		return 0, nil
	}
	if err := s.target.DeleteLineItems(ctx, itemType, id, toDelete); err != nil {
		return 0, fmt.Errorf("syncService.ClearSentItems: %w", err)
	}
	return len(toDelete), nil
}
