package noop

import (
	"context"
	"fmt"
	"log"

	"nebenscan/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs report URLs to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendReportReadyEmail(_ context.Context, toEmail, billID string) error {
	reportURL := fmt.Sprintf("%s/bills/%s", s.frontendURL, billID)
	log.Printf("[NOOP EMAIL] Report ready for %s: %s", toEmail, reportURL)
	return nil
}
