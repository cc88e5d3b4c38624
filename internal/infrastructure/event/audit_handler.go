package event

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per domain event.
type AuditLogHandler struct {
	logger *zap.Logger
	types  []string
}

// NewAuditLogHandler logs the given event types, or every event when none are given.
func NewAuditLogHandler(log *zap.Logger, eventTypes ...string) *AuditLogHandler {
	return &AuditLogHandler{logger: log.Named("audit"), types: eventTypes}
}

func (h *AuditLogHandler) EventTypes() []string { return h.types }

func (h *AuditLogHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	logger.For(ctx, h.logger).Info("domain event",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.String("aggregate_type", ev.AggregateType()),
		zap.String("aggregate_id", ev.AggregateID().String()),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}
