package worker

// Processes low-stock alert jobs from QueueAlerts: one email per product
// that crossed its reorder threshold. Sends go through the SMTP circuit
// breaker so a dead relay fast-fails instead of blocking the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"pcxpress/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ToEmail     string `json:"to_email"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
}

// AlertWorker sends low-stock notification emails.
type AlertWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb}
}

func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Str("product_id", payload.ProductID).Msg("alert_worker: empty to_email — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.ProductName, payload.ProductCode)
	body := fmt.Sprintf(
		"Product %s (%s) is down to %d units (reorder threshold %d).\n\nConsider creating a purchase order.",
		payload.ProductName, payload.ProductCode, payload.Quantity, payload.Threshold)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, subject, body, "")
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("alert_worker: failed to send alert")
		return err
	}

	log.Info().Str("to", payload.ToEmail).Str("product_id", payload.ProductID).Msg("alert_worker: low stock alert sent")
	return nil
}
