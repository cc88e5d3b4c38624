package cache

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// Invalidator is the part of Store the handler needs.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidationHandler drops cached listings whenever an event changes what a
// listing shows: the average rating, the job details or the sales count.
type InvalidationHandler struct {
	target Invalidator
	logger *zap.Logger
}

// NewInvalidationHandler creates a handler that invalidates target.
func NewInvalidationHandler(target Invalidator, log *zap.Logger) *InvalidationHandler {
	return &InvalidationHandler{target: target, logger: log}
}

func (h *InvalidationHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeJobAverageRatingChanged,
		catalog.EventTypeJobCreated,
		catalog.EventTypeJobUpdated,
		catalog.EventTypeJobDeactivated,
		engagement.EventTypeJobInActionCreated,
	}
}

func (h *InvalidationHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	if err := h.target.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("job listings invalidated",
		zap.String("event_type", ev.EventType()),
		zap.String("job_id", ev.AggregateID().String()),
	)
	return nil
}

var _ shared.EventHandler = (*InvalidationHandler)(nil)
