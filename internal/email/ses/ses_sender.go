package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"s2j/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	alertTo     []string
}

// NewSESSender creates a new SES-backed AlertSender.
func NewSESSender(region, fromAddress, fromName string, alertTo []string) (port.AlertSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		alertTo:     alertTo,
	}, nil
}

func (s *sesSender) SendSyncFailureAlert(ctx context.Context, alert port.SyncFailureAlert) error {
	subject := fmt.Sprintf("S2J sync failed for %s %s", alert.TargetType, alert.TargetID)
	htmlBody := buildSyncFailureHTML(alert)
	textBody := fmt.Sprintf(
		"Sync to %s %s failed after %d attempts.\n\nExports: %s\nLast error: %s\n\nThe export records were not marked as sent; re-run the send once the underlying issue is resolved.",
		alert.TargetType, alert.TargetID, alert.Attempts,
		strings.Join(alert.ExportIDs, ", "), alert.LastError)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.alertTo,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSyncFailureHTML(alert port.SyncFailureAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Sync failure</h2>
  <p>Sending line items to %s <strong>%s</strong> failed after %d attempts.</p>
  <p><strong>Exports:</strong> %s</p>
  <p><strong>Last error:</strong></p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p>The export records were not marked as sent; re-run the send once the underlying issue is resolved.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">S2J - Saberis to Jobber Sync</p>
</body>
</html>`, alert.TargetType, alert.TargetID, alert.Attempts,
		strings.Join(alert.ExportIDs, ", "), alert.LastError)
}
