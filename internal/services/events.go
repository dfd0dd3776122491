package services

import (
	"context"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/metrics"
)

// publish hands e to pub after the mutation has been committed. A failure
// is logged and counted but never returned: the record is already stored.
func publish(ctx context.Context, pub EventPublisher, e amqp.LedgerEvent) {
	if pub == nil {
		return
	}
	err := pub.Publish(ctx, e)
	metrics.RecordLedgerEvent(string(e.Type), err)
	if err != nil {
		fields := log.NewFields().
			WithOperation(log.OpPublish).
			WithRecord(e.UserID, e.RecordID).
			WithError(err)
		fields[log.FieldEventType] = string(e.Type)
		log.FromContext(ctx).WithComponent(log.ComponentLedger).WarnContext(ctx, "Failed to publish ledger event", fields.ToSlice()...)
	}
}
