package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ListingCache stores encoded listing pages by query fingerprint. Get reports
// the cache generation it looked in; Set must drop the write when the cache
// was invalidated since that generation.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, int64, bool, error)
	Set(ctx context.Context, key string, gen int64, value []byte) error
}

// JobPage is one page of a catalog listing
type JobPage = shared.Paginated[JobListItem]

// QueryService answers catalog listings. Only active jobs are listed and
// every row carries its sales count.
type QueryService struct {
	jobs   catalog.JobRepository
	cache  ListingCache
	logger *zap.Logger
}

// NewQueryService creates a new QueryService. A nil cache disables caching.
func NewQueryService(jobs catalog.JobRepository, cache ListingCache, log *zap.Logger) *QueryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueryService{jobs: jobs, cache: cache, logger: log}
}

// Search runs a general catalog query
func (s *QueryService) Search(ctx context.Context, q catalog.JobQuery) (*JobPage, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "search",
		"query.bucket", string(q.Bucket),
		"query.order_by", string(q.OrderBy),
		"query.order_dir", string(q.OrderDir))
	defer span.End()

	key := fingerprint(q)
	lookup := s.cached(ctx, key)
	if lookup.page != nil {
		telemetry.SetAttributes(span, "cache.hit", true)
		return lookup.page, nil
	}

	listings, total, err := s.jobs.Search(ctx, q)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	items := make([]JobListItem, len(listings))
	for i, l := range listings {
		items[i] = ToJobListItem(l)
	}
	page := shared.NewPaginated(items, total, q.Page, q.PageSize)
	if lookup.storable {
		s.store(ctx, key, lookup.gen, &page)
	}
	return &page, nil
}

// ListByRatingBucket lists active jobs whose average falls in bucket,
// best rated first
func (s *QueryService) ListByRatingBucket(ctx context.Context, kind catalog.JobKind, search string, bucket catalog.RatingBucket, page shared.Pagination) (*JobPage, error) {
	if _, err := catalog.ParseRatingBucket(string(bucket)); err != nil {
		return nil, err
	}
	return s.Search(ctx, catalog.JobQuery{
		Kind:       kind,
		Search:     search,
		Bucket:     bucket,
		OrderBy:    catalog.JobSortByAverageRating,
		OrderDir:   shared.SortDesc,
		Pagination: page,
	})
}

// ListByPriceAsc lists active jobs cheapest first
func (s *QueryService) ListByPriceAsc(ctx context.Context, kind catalog.JobKind, search string, page shared.Pagination) (*JobPage, error) {
	return s.listOrdered(ctx, kind, search, catalog.JobSortByPrice, shared.SortAsc, page)
}

// ListByPriceDesc lists active jobs most expensive first
func (s *QueryService) ListByPriceDesc(ctx context.Context, kind catalog.JobKind, search string, page shared.Pagination) (*JobPage, error) {
	return s.listOrdered(ctx, kind, search, catalog.JobSortByPrice, shared.SortDesc, page)
}

// ListByCreationAsc lists active jobs oldest first
func (s *QueryService) ListByCreationAsc(ctx context.Context, kind catalog.JobKind, search string, page shared.Pagination) (*JobPage, error) {
	return s.listOrdered(ctx, kind, search, catalog.JobSortByCreatedAt, shared.SortAsc, page)
}

// ListByCreationDesc lists active jobs newest first
func (s *QueryService) ListByCreationDesc(ctx context.Context, kind catalog.JobKind, search string, page shared.Pagination) (*JobPage, error) {
	return s.listOrdered(ctx, kind, search, catalog.JobSortByCreatedAt, shared.SortDesc, page)
}

func (s *QueryService) listOrdered(ctx context.Context, kind catalog.JobKind, search string, by catalog.JobSortField, dir shared.SortDirection, page shared.Pagination) (*JobPage, error) {
	return s.Search(ctx, catalog.JobQuery{
		Kind:       kind,
		Search:     search,
		OrderBy:    by,
		OrderDir:   dir,
		Pagination: page,
	})
}

// cacheLookup is the outcome of a cache read. On a miss, gen is the
// generation taken before the database is queried; storable is false when
// the cache could not be read at all.
type cacheLookup struct {
	page     *JobPage
	gen      int64
	storable bool
}

// cached returns the stored page for key. Cache failures are logged and
// treated as a miss; listings are always answerable from the database.
func (s *QueryService) cached(ctx context.Context, key string) cacheLookup {
	if s.cache == nil {
		return cacheLookup{}
	}
	data, gen, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.For(ctx, s.logger).Warn("job listing cache read failed", zap.Error(err))
		return cacheLookup{}
	}
	miss := cacheLookup{gen: gen, storable: true}
	if !ok {
		return miss
	}
	var page JobPage
	if err := json.Unmarshal(data, &page); err != nil {
		logger.For(ctx, s.logger).Warn("discarding undecodable cached listing", zap.Error(err))
		return miss
	}
	return cacheLookup{page: &page, gen: gen}
}

func (s *QueryService) store(ctx context.Context, key string, gen int64, page *JobPage) {
	data, err := json.Marshal(page)
	if err != nil {
		logger.For(ctx, s.logger).Warn("failed to encode listing for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, gen, data); err != nil {
		logger.For(ctx, s.logger).Warn("job listing cache write failed", zap.Error(err))
	}
}

// fingerprint identifies a normalized query
func fingerprint(q catalog.JobQuery) string {
	raw := fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%s\x00%d\x00%d",
		q.Kind, q.Search, q.Bucket, q.OrderBy, q.OrderDir, q.Page, q.PageSize)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
