package port

import "context"

// SyncFailureAlert describes one failed send for the alert email.
type SyncFailureAlert struct {
	TargetID     string
	TargetType   string
	ExportIDs    []string
	Attempts     int
	LastError    string
}

// AlertSender defines the contract for operator alerting. It is triggered
// at most once per send invocation, on retry budget exhaustion.
type AlertSender interface {
	SendSyncFailureAlert(ctx context.Context, alert SyncFailureAlert) error
}
