package domain

// LineItemCategory is the target system's products-and-services category.
type LineItemCategory string

const (
	CategoryProduct LineItemCategory = "PRODUCT"
	CategoryService LineItemCategory = "SERVICE"
)

// IngestStatus reports the outcome of one ingestion attempt.
type IngestStatus string

const (
	// IngestSkipped means the cooldown gate rejected the attempt; no source
	// I/O was performed.
	IngestSkipped IngestStatus = "skipped"
	// IngestCompleted means the source was scanned and any new documents
	// were appended to the manifest.
	IngestCompleted IngestStatus = "ingested"
)

// TargetItemType distinguishes the two Jobber object kinds line items can be
// attached to.
type TargetItemType string

const (
	TargetQuote TargetItemType = "Quote"
	TargetJob   TargetItemType = "Job"
)
