package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/cache"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, int64, bool, error) {
	return nil, 0, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, int64, []byte) error {
	return errors.New("connection refused")
}

func listing(t *testing.T, avg string, sales int64) catalog.JobListing {
	t.Helper()
	job, err := catalog.NewJob(catalog.JobKindIndependent, uuid.New(), nil, "Tutoring", "", decimal.NewFromInt(10))
	require.NoError(t, err)
	job.AverageRating = decimal.RequireFromString(avg)
	return catalog.JobListing{Job: *job, SalesCount: sales}
}

func TestQueryService_Search_NormalizesQuery(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	svc := NewQueryService(repo, nil, zap.NewNop())
	ctx := context.Background()

	expected := catalog.JobQuery{
		Search:     "house painting",
		OrderBy:    catalog.JobSortByCreatedAt,
		OrderDir:   shared.SortDesc,
		Pagination: shared.Pagination{Page: 1, PageSize: shared.DefaultPageSize},
	}
	repo.On("Search", ctx, expected).Return([]catalog.JobListing{listing(t, "3.2", 2)}, int64(1), nil)

	page, err := svc.Search(ctx, catalog.JobQuery{Search: "  House   PAINTING "})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].SalesCount)
	assert.Equal(t, "3-3.5", page.Items[0].RatingBucket)
	assert.Equal(t, 1, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestQueryService_Search_EmptyIsValid(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	svc := NewQueryService(repo, nil, zap.NewNop())
	ctx := context.Background()
	repo.On("Search", ctx, mock.Anything).Return(nil, int64(0), nil)

	page, err := svc.ListByPriceAsc(ctx, catalog.JobKindCompany, "", shared.Pagination{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

func TestQueryService_OrderedListings(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		call func(*QueryService) (*JobPage, error)
		by   catalog.JobSortField
		dir  shared.SortDirection
	}{
		{"price asc", func(s *QueryService) (*JobPage, error) {
			return s.ListByPriceAsc(ctx, "", "", shared.Pagination{})
		}, catalog.JobSortByPrice, shared.SortAsc},
		{"price desc", func(s *QueryService) (*JobPage, error) {
			return s.ListByPriceDesc(ctx, "", "", shared.Pagination{})
		}, catalog.JobSortByPrice, shared.SortDesc},
		{"creation asc", func(s *QueryService) (*JobPage, error) {
			return s.ListByCreationAsc(ctx, "", "", shared.Pagination{})
		}, catalog.JobSortByCreatedAt, shared.SortAsc},
		{"creation desc", func(s *QueryService) (*JobPage, error) {
			return s.ListByCreationDesc(ctx, "", "", shared.Pagination{})
		}, catalog.JobSortByCreatedAt, shared.SortDesc},
		{"bucket", func(s *QueryService) (*JobPage, error) {
			return s.ListByRatingBucket(ctx, "", "", catalog.RatingBucket4To45, shared.Pagination{})
		}, catalog.JobSortByAverageRating, shared.SortDesc},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(testutil.MockJobRepository)
			svc := NewQueryService(repo, nil, zap.NewNop())
			repo.On("Search", ctx, mock.MatchedBy(func(q catalog.JobQuery) bool {
				return q.OrderBy == tc.by && q.OrderDir == tc.dir
			})).Return([]catalog.JobListing{}, int64(0), nil)

			_, err := tc.call(svc)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestQueryService_ListByRatingBucket_Invalid(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	svc := NewQueryService(repo, nil, zap.NewNop())

	for _, b := range []catalog.RatingBucket{"", "5-6", "3-4"} {
		_, err := svc.ListByRatingBucket(context.Background(), "", "", b, shared.Pagination{})
		assert.True(t, shared.IsValidation(err), "bucket %q", b)
	}
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestQueryService_Search_UsesCache(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	store := cache.NewInMemoryStore(time.Minute)
	svc := NewQueryService(repo, store, zap.NewNop())
	ctx := context.Background()

	repo.On("Search", ctx, mock.Anything).Return([]catalog.JobListing{listing(t, "4.75", 1)}, int64(1), nil).Once()

	first, err := svc.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucket45To5})
	require.NoError(t, err)
	second, err := svc.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucket45To5})
	require.NoError(t, err)
	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	assert.True(t, first.Items[0].AverageRating.Equal(second.Items[0].AverageRating))
	repo.AssertNumberOfCalls(t, "Search", 1)

	require.NoError(t, store.Invalidate(ctx))
	repo.On("Search", ctx, mock.Anything).Return([]catalog.JobListing{}, int64(0), nil).Once()
	third, err := svc.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucket45To5})
	require.NoError(t, err)
	assert.Empty(t, third.Items)
	repo.AssertNumberOfCalls(t, "Search", 2)
}

func TestQueryService_Search_DropsPageInvalidatedDuringQuery(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	store := cache.NewInMemoryStore(time.Minute)
	svc := NewQueryService(repo, store, zap.NewNop())
	ctx := context.Background()
	q := catalog.JobQuery{Bucket: catalog.RatingBucket45To5}

	// A rating commits while the first query is reading the old average.
	repo.On("Search", ctx, mock.Anything).
		Run(func(mock.Arguments) { require.NoError(t, store.Invalidate(ctx)) }).
		Return([]catalog.JobListing{listing(t, "5", 0)}, int64(1), nil).Once()
	repo.On("Search", ctx, mock.Anything).
		Return([]catalog.JobListing{listing(t, "2", 1)}, int64(1), nil).Once()

	first, err := svc.Search(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "5", first.Items[0].AverageRating.String())
	assert.Zero(t, store.Len())

	second, err := svc.Search(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "2", second.Items[0].AverageRating.String())
	repo.AssertNumberOfCalls(t, "Search", 2)

	third, err := svc.Search(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "2", third.Items[0].AverageRating.String())
	repo.AssertNumberOfCalls(t, "Search", 2)
}

func TestQueryService_Search_CacheFailureFallsThrough(t *testing.T) {
	repo := new(testutil.MockJobRepository)
	svc := NewQueryService(repo, brokenCache{}, zap.NewNop())
	ctx := context.Background()
	repo.On("Search", ctx, mock.Anything).Return([]catalog.JobListing{listing(t, "2", 0)}, int64(1), nil)

	page, err := svc.Search(ctx, catalog.JobQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestFingerprint_DistinguishesQueries(t *testing.T) {
	base := catalog.JobQuery{OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortAsc, Pagination: shared.Pagination{Page: 1, PageSize: 20}}
	other := base
	other.Page = 2

	assert.Equal(t, fingerprint(base), fingerprint(base))
	assert.NotEqual(t, fingerprint(base), fingerprint(other))
	assert.Len(t, fingerprint(base), 64)
}
