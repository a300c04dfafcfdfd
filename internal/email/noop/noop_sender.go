package noop

import (
	"context"
	"log"
	"strings"

	"s2j/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op AlertSender that logs alerts to stdout.
func NewNoopSender() port.AlertSender {
	return &noopSender{}
}

func (s *noopSender) SendSyncFailureAlert(_ context.Context, alert port.SyncFailureAlert) error {
	log.Printf("[NOOP ALERT] sync to %s %s failed after %d attempts (exports: %s): %s",
		alert.TargetType, alert.TargetID, alert.Attempts,
		strings.Join(alert.ExportIDs, ", "), alert.LastError)
	return nil
}
