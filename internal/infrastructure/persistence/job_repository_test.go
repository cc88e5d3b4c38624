package persistence_test

import (
	"context"
	"testing"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormJobRepository_SaveAndFind(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seed := testutil.NewSeeder(t, db)
	repo := persistence.NewGormJobRepository(db)
	ctx := context.Background()

	client := seed.Client("Acme buyer")
	job := seed.CompanyJob("Warehouse wiring", "1500.50", client)

	found, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.JobKindCompany, found.Kind)
	assert.True(t, found.IsCommissionedBy(client.ID))
	assert.True(t, found.Price.Equal(decimal.RequireFromString("1500.50")))
	assert.True(t, found.AverageRating.Equal(catalog.InitialAverageRating))
	assert.Equal(t, 1, found.Version)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))

	locked, err := repo.FindByIDForUpdate(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, locked.ID)
}

func TestGormJobRepository_Save_VersionCheck(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seed := testutil.NewSeeder(t, db)
	repo := persistence.NewGormJobRepository(db)
	ctx := context.Background()

	job := seed.IndependentJob("Plumbing", "80")

	first, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)

	require.NoError(t, first.ApplyAverageRating(decimal.NewFromInt(4)))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, stale.ApplyAverageRating(decimal.NewFromInt(2)))
	err = repo.Save(ctx, stale)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))

	reloaded, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.AverageRating.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 2, reloaded.Version)
}

func TestGormJobRepository_Search(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seed := testutil.NewSeeder(t, db)
	repo := persistence.NewGormJobRepository(db)
	engagements := persistence.NewGormJobInActionRepository(db)
	ctx := context.Background()

	client := seed.Client("Buyer")
	cheap := seed.IndependentJob("Garden Cleanup", "20")
	mid := seed.IndependentJob("Kitchen paint", "150")
	pricey := seed.CompanyJob("Office renovation", "9000", client)
	odd := seed.IndependentJob("100% organic_gardening", "45")

	setAverage(t, repo, cheap, "2.9999")
	setAverage(t, repo, mid, "3")
	setAverage(t, repo, pricey, "4.5")

	hidden := seed.IndependentJob("Retired garden job", "10")
	hidden.Deactivate()
	require.NoError(t, repo.Save(ctx, hidden))

	for range 2 {
		ja, err := engagement.NewJobInAction(mid.ID, client.ID)
		require.NoError(t, err)
		require.NoError(t, engagements.Save(ctx, ja))
	}

	ids := func(items []catalog.JobListing) []uuid.UUID {
		out := make([]uuid.UUID, len(items))
		for i, it := range items {
			out[i] = it.Job.ID
		}
		return out
	}

	t.Run("only active jobs, price ascending", func(t *testing.T) {
		items, total, err := repo.Search(ctx, catalog.JobQuery{OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortAsc})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Equal(t, []uuid.UUID{cheap.ID, odd.ID, mid.ID, pricey.ID}, ids(items))
	})

	t.Run("price descending", func(t *testing.T) {
		items, _, err := repo.Search(ctx, catalog.JobQuery{OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{pricey.ID, mid.ID, odd.ID, cheap.ID}, ids(items))
	})

	t.Run("kind filter", func(t *testing.T) {
		items, total, err := repo.Search(ctx, catalog.JobQuery{Kind: catalog.JobKindCompany})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []uuid.UUID{pricey.ID}, ids(items))
	})

	t.Run("search is case-insensitive over title and description", func(t *testing.T) {
		items, _, err := repo.Search(ctx, catalog.JobQuery{Search: "  GARDEN ", OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cheap.ID, odd.ID}, ids(items))
	})

	t.Run("wildcards in the term match literally", func(t *testing.T) {
		items, _, err := repo.Search(ctx, catalog.JobQuery{Search: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{odd.ID}, ids(items))

		items, _, err = repo.Search(ctx, catalog.JobQuery{Search: "c_eanup"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("bucket boundaries", func(t *testing.T) {
		items, _, err := repo.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucketBelow3})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cheap.ID}, ids(items))

		items, _, err = repo.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucket3To35})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{mid.ID}, ids(items))

		items, _, err = repo.Search(ctx, catalog.JobQuery{Bucket: catalog.RatingBucket45To5, OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{odd.ID, pricey.ID}, ids(items), "5.0 and 4.5 both belong to the top bucket")
	})

	t.Run("sales count", func(t *testing.T) {
		items, _, err := repo.Search(ctx, catalog.JobQuery{Search: "kitchen"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.EqualValues(t, 2, items[0].SalesCount)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		q := catalog.JobQuery{OrderBy: catalog.JobSortByPrice, OrderDir: shared.SortAsc}
		q.Page, q.PageSize = 2, 3
		items, total, err := repo.Search(ctx, q)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Equal(t, []uuid.UUID{pricey.ID}, ids(items))
	})

	t.Run("empty result", func(t *testing.T) {
		items, total, err := repo.Search(ctx, catalog.JobQuery{Search: "nothing like this"})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("invalid bucket", func(t *testing.T) {
		_, _, err := repo.Search(ctx, catalog.JobQuery{Bucket: "9-10"})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestGormJobRepository_Search_FoldsNonASCII(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seed := testutil.NewSeeder(t, db)
	repo := persistence.NewGormJobRepository(db)
	ctx := context.Background()

	tree := seed.IndependentJob("Árbol pruning", "80")
	seed.IndependentJob("Roof repair", "300")

	for _, term := range []string{"ÁRBOL", "árbol", "  Árbol   PRUNING "} {
		q, err := catalog.JobQuery{Search: term}.Normalize()
		require.NoError(t, err)
		items, total, err := repo.Search(ctx, q)
		require.NoError(t, err, term)
		assert.EqualValues(t, 1, total, term)
		require.Len(t, items, 1, term)
		assert.Equal(t, tree.ID, items[0].Job.ID, term)
	}

	require.NoError(t, tree.UpdateDetails("ÉCLAIR stand", "Pastry", tree.Price))
	require.NoError(t, repo.Save(ctx, tree))

	q, err := catalog.JobQuery{Search: "éclair"}.Normalize()
	require.NoError(t, err)
	_, total, err := repo.Search(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "search text follows updates")

	q, err = catalog.JobQuery{Search: "árbol"}.Normalize()
	require.NoError(t, err)
	_, total, err = repo.Search(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func setAverage(t *testing.T, repo *persistence.GormJobRepository, job *catalog.Job, avg string) {
	t.Helper()
	require.NoError(t, job.ApplyAverageRating(decimal.RequireFromString(avg)))
	require.NoError(t, repo.Save(context.Background(), job))
}
