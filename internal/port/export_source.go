package port

import "context"

// ExportHeader identifies one document available on the export source.
type ExportHeader struct {
	GUID     string
	Filename string
}

// ExportSource abstracts the vendor platform that produces design export
// documents. Implementations must distinguish an unreachable source (fatal
// for a whole scan) from a single document that fails to download.
type ExportSource interface {
	ListUnexported(ctx context.Context) ([]ExportHeader, error)
	FetchDocument(ctx context.Context, guid string) ([]byte, error)
}
