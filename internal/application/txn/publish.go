package txn

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PublishCommitted drains the pending events of roots and publishes them.
// It must only be called after the transaction that persisted roots committed.
// Publish failures are logged, never returned: the state change already happened.
func PublishCommitted(ctx context.Context, pub shared.EventPublisher, log *zap.Logger, roots ...shared.AggregateRoot) {
	var events []shared.DomainEvent
	for _, root := range roots {
		if root == nil {
			continue
		}
		events = append(events, root.GetDomainEvents()...)
		root.ClearDomainEvents()
	}
	if len(events) == 0 || pub == nil {
		return
	}
	if err := pub.Publish(ctx, events...); err != nil {
		logger.For(ctx, log).Warn("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}
