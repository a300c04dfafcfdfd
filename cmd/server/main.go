package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"s2j/internal/config"
	"s2j/internal/email/noop"
	"s2j/internal/email/ses"
	"s2j/internal/handler"
	"s2j/internal/jobber"
	"s2j/internal/port"
	"s2j/internal/repository/postgres"
	"s2j/internal/router"
	"s2j/internal/saberis"
	"s2j/internal/service"
	s3storage "s2j/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development reads .env; deployed environments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	exportRepo := postgres.NewExportRepo(db)
	mappingRepo := postgres.NewClientMappingRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)

	// Initialize storage and external clients
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	saberisClient := saberis.NewAPIClient(cfg.Saberis)
	jobberClient := jobber.NewClient(cfg.Jobber)

	var alerts port.AlertSender
	if cfg.Email.Provider == "ses" {
		alerts, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName,
			splitAddresses(cfg.Email.AlertTo))
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		alerts = noop.NewNoopSender()
	}

	// Initialize services
	catalogSvc := service.NewCatalogService(catalogRepo, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
	exportSvc := service.NewExportService(
		saberisClient, exportRepo, s3Client, catalogSvc, service.NewRealClock(),
		cfg.S3.Bucket, cfg.S3.KeyPrefix, cfg.Saberis.IngestCooldown)
	mappingSvc := service.NewMappingService(mappingRepo, jobberClient)
	syncSvc := service.NewSyncService(
		exportRepo, s3Client, jobberClient, mappingSvc, catalogSvc, alerts,
		cfg.S3.Bucket, cfg.Jobber.MaxRetries, cfg.Jobber.BackoffBase)

	// Initialize handlers
	exportH := handler.NewExportHandler(exportSvc)
	syncH := handler.NewSyncHandler(syncSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(exportH, syncH, catalogH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func splitAddresses(raw string) []string {
	parts := strings.Split(raw, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			addrs = append(addrs, p)
		}
	}
	return addrs
}
