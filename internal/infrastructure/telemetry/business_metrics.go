package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RatingOperation labels rating mutations.
type RatingOperation string

const (
	RatingOperationCreate RatingOperation = "create"
	RatingOperationUpdate RatingOperation = "update"
	RatingOperationDelete RatingOperation = "delete"
)

// CatalogMetricsProvider reports catalog state for periodic gauge collection.
type CatalogMetricsProvider interface {
	// CountActiveJobsByBucket returns the number of active jobs per rating bucket
	CountActiveJobsByBucket(ctx context.Context) (map[string]int64, error)
}

// BusinessMetrics tracks engagements, status transitions and ratings.
type BusinessMetrics struct {
	logger *zap.Logger

	jobInActionCreated *Counter
	statusTransitions  *Counter
	jobsFinished       *Counter
	ratingMutations    *Counter
	ratingScores       *Histogram
	averageRatings     *Histogram
	jobsByBucket       *Gauge

	catalogProvider CatalogMetricsProvider
	stopChan        chan struct{}
	stopOnce        sync.Once
	collectOnce     sync.Once
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CatalogProvider CatalogMetricsProvider
}

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// NewBusinessMetrics creates all business instruments on the given meter.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:          logger,
		catalogProvider: cfg.CatalogProvider,
		stopChan:        make(chan struct{}),
	}

	in := NewInstruments(cfg.Meter)
	bm.jobInActionCreated = in.Counter("marketplace_job_in_action_created_total",
		"Total number of job engagements created", "{engagements}")
	bm.statusTransitions = in.Counter("marketplace_job_status_transitions_total",
		"Total number of job-in-action status changes", "{transitions}")
	bm.jobsFinished = in.Counter("marketplace_jobs_finished_total",
		"Total number of engagements that reached FINALIZADO", "{engagements}")
	bm.ratingMutations = in.Counter("marketplace_rating_mutations_total",
		"Total number of rating creates, updates and deletes", "{ratings}")
	bm.ratingScores = in.Histogram("marketplace_rating_score",
		"Distribution of submitted rating scores", "{score}", 1, 2, 3, 4, 5)
	bm.averageRatings = in.Histogram("marketplace_job_average_rating",
		"Job averages observed after each recomputation", "{score}", AverageRatingBuckets...)
	bm.jobsByBucket = in.Gauge("marketplace_active_jobs_by_rating_bucket",
		"Active jobs per rating bucket", "{jobs}")
	if err := in.Err(); err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordJobInActionCreated counts a new engagement.
func (bm *BusinessMetrics) RecordJobInActionCreated(ctx context.Context, jobKind string) {
	bm.jobInActionCreated.Inc(ctx, AttrJobKind.String(jobKind))
}

// RecordStatusTransition counts a real status change and, for FINALIZADO, a finished job.
func (bm *BusinessMetrics) RecordStatusTransition(ctx context.Context, from, to string, finished bool) {
	bm.statusTransitions.Inc(ctx, AttrStatusFrom.String(from), AttrStatusTo.String(to))
	if finished {
		bm.jobsFinished.Inc(ctx)
	}
}

// RecordRatingMutation counts a rating mutation and the resulting job average.
// score is ignored for deletes.
func (bm *BusinessMetrics) RecordRatingMutation(ctx context.Context, op RatingOperation, jobKind string, score int, newAverage float64) {
	bm.ratingMutations.Inc(ctx, AttrRatingOp.String(string(op)), AttrJobKind.String(jobKind))
	if op != RatingOperationDelete {
		bm.ratingScores.Record(ctx, float64(score), AttrJobKind.String(jobKind))
	}
	bm.averageRatings.Record(ctx, newAverage, AttrJobKind.String(jobKind))
}

// StartPeriodicCollection samples catalog gauges every interval until Stop or ctx is done.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectCatalogMetrics(ctx)
	for {
		select {
		case <-bm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectCatalogMetrics(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectCatalogMetrics(ctx context.Context) {
	if bm.catalogProvider == nil {
		return
	}
	counts, err := bm.catalogProvider.CountActiveJobsByBucket(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect catalog metrics", zap.Error(err))
		return
	}
	for bucket, count := range counts {
		bm.jobsByBucket.Record(ctx, count, AttrRatingBucket.String(bucket))
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}
