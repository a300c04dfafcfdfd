package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
	"s2j/internal/port"
	"s2j/internal/service"
	"s2j/mocks"
)

const sampleDoc = `{"SaberisOrderDocument":{"Order":{
	"Username":"jdoe","Date":"2024.03.15",
	"Customer":{"Name":"Acme Kitchens"},
	"Shipping":{"Address":"123 Main St","City":"Toronto","StateOrProvince":"ON","ZipOrPostal":"M5V 1A1"},
	"Group":{"Item":[
		{"Type":"Text","Description":"Catalog=KWP_24C1"},
		{"Type":"Product","LineID":1,"Description":"Cabinet","Quantity":2,"Cost":100}
	]}}}}`

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func setupExportService(clock service.Clock) (*service.ExportService, *mocks.MockExportSource, *mocks.MockExportRepo, *mocks.MockObjectStorage, *mocks.MockCatalogRepo) {
	source := new(mocks.MockExportSource)
	repo := new(mocks.MockExportRepo)
	storage := new(mocks.MockObjectStorage)
	catalogRepo := new(mocks.MockCatalogRepo)
	catalogs := service.NewCatalogService(catalogRepo, 16, time.Minute)
	svc := service.NewExportService(source, repo, storage, catalogs, clock, "exports-bucket", "saberis", 30*time.Second)
	return svc, source, repo, storage, catalogRepo
}

func TestExportServiceIngest_RecordsDocuments(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	svc, source, repo, storage, catalogRepo := setupExportService(clock)

	source.On("ListUnexported", mock.Anything).
		Return([]port.ExportHeader{{GUID: "abc-123", Filename: "export.json"}}, nil)
	source.On("FetchDocument", mock.Anything, "abc-123").Return([]byte(sampleDoc), nil)
	catalogRepo.On("GetByID", mock.Anything, "KWP_24C1").Return(nil, domain.ErrCatalogNotFound).Maybe()
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "exports-bucket" && in.Key == "saberis/abc-123.json"
	})).Return(&port.UploadOutput{Location: "saberis/abc-123.json"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Ingest(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, domain.IngestCompleted, result.Status)
	assert.Len(t, result.Records, 1)
	record := result.Records[0]
	assert.Equal(t, "abc-123", record.SourceGUID)
	assert.Equal(t, "2024-03-15", record.ExportDate)
	assert.Equal(t, "Acme Kitchens", record.CustomerName)
	assert.Equal(t, "123 Main St, Toronto, ON", record.ShippingAddress)
	assert.False(t, record.SentToJobber)
	source.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestExportServiceIngest_CooldownGate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	svc, source, _, _, _ := setupExportService(clock)

	source.On("ListUnexported", mock.Anything).Return([]port.ExportHeader{}, nil)

	first, err := svc.Ingest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, domain.IngestCompleted, first.Status)

	clock.advance(5 * time.Second)
	second, err := svc.Ingest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, domain.IngestSkipped, second.Status)
	source.AssertNumberOfCalls(t, "ListUnexported", 1)

	clock.advance(31 * time.Second)
	third, err := svc.Ingest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, domain.IngestCompleted, third.Status)
	source.AssertNumberOfCalls(t, "ListUnexported", 2)
}

func TestExportServiceIngest_UnreachableSourceLeavesGateOpen(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	svc, source, _, _, _ := setupExportService(clock)

	source.On("ListUnexported", mock.Anything).
		Return(nil, domain.ErrSourceUnreachable).Once()
	source.On("ListUnexported", mock.Anything).Return([]port.ExportHeader{}, nil)

	_, err := svc.Ingest(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnreachable)

	// A failed scan must not start the cooldown window.
	clock.advance(time.Second)
	result, err := svc.Ingest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, domain.IngestCompleted, result.Status)
}

func TestExportServiceIngest_SkipsFailedDocuments(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	svc, source, repo, storage, catalogRepo := setupExportService(clock)

	source.On("ListUnexported", mock.Anything).Return([]port.ExportHeader{
		{GUID: "bad-fetch"},
		{GUID: "bad-json"},
		{GUID: "good"},
		{GUID: "good"},
	}, nil)
	source.On("FetchDocument", mock.Anything, "bad-fetch").Return(nil, errors.New("boom"))
	source.On("FetchDocument", mock.Anything, "bad-json").Return([]byte("not json"), nil)
	source.On("FetchDocument", mock.Anything, "good").Return([]byte(sampleDoc), nil).Once()
	catalogRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrCatalogNotFound).Maybe()
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Ingest(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, domain.IngestCompleted, result.Status)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, "good", result.Records[0].SourceGUID)
	source.AssertExpectations(t)
}

func TestExportServiceList_EnrichesFromStorage(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, _, repo, storage, catalogRepo := setupExportService(clock)

	rows := []domain.ExportRecord{
		{SourceGUID: "a", StoredPath: "saberis/a.json"},
		{SourceGUID: "b", StoredPath: "saberis/b.json"},
	}
	repo.On("List", mock.Anything, 0, 50).Return(rows, 2, nil)
	storage.On("Download", mock.Anything, "exports-bucket", "saberis/a.json").Return([]byte(sampleDoc), nil)
	storage.On("Download", mock.Anything, "exports-bucket", "saberis/b.json").Return(nil, errors.New("gone"))
	catalogRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrCatalogNotFound).Maybe()

	enriched, total, err := svc.List(context.Background(), 0, 50)

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, enriched, 2)
	assert.Equal(t, []string{"KWP_24C1"}, enriched[0].Catalogs)
	assert.InDelta(t, 200, enriched[0].CostByCatalog["KWP_24C1"], 1e-9)
	// The unreadable document still lists, just without enrichment.
	assert.Empty(t, enriched[1].Catalogs)
}

func TestExportServicePrune(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, _, repo, storage, _ := setupExportService(clock)

	stale := []domain.ExportRecord{
		{SourceGUID: "old-1", StoredPath: "saberis/old-1.json"},
		{SourceGUID: "old-2", StoredPath: "saberis/old-2.json"},
	}
	repo.On("List", mock.Anything, 3, 10000).Return(stale, 5, nil)
	storage.On("Delete", mock.Anything, "exports-bucket", "saberis/old-1.json").Return(nil)
	storage.On("Delete", mock.Anything, "exports-bucket", "saberis/old-2.json").Return(errors.New("gone"))
	repo.On("Prune", mock.Anything, 3).Return(2, nil)

	pruned, err := svc.Prune(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, 2, pruned)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}
