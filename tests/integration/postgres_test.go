//go:build integration

package integration

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/application/engagement"
	ratingapp "github.com/Wolf09/back-prof-sub000/internal/application/rating"
	domainengagement "github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/migration"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/Wolf09/back-prof-sub000/migrations"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/Wolf09/back-prof-sub000/tests/testutil/testapi"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newPostgresDB starts a throwaway postgres, applies the embedded
// migrations and returns a gorm handle configured like production.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(migrationDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(), "Failed to apply migrations")
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), persistence.GormConfig(zap.NewNop(), "silent", 0))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMarketplaceScenario_Postgres(t *testing.T) {
	runMarketplaceScenario(t, testapi.NewOnDB(t, newPostgresDB(t)))
}

func newRatingService(db *gorm.DB) *ratingapp.Service {
	return ratingapp.NewService(
		persistence.NewGormTransactionScope(db),
		persistence.NewGormRatingRepository(db),
		nil,
		zap.NewNop(),
	)
}

func TestConcurrentDuplicateRatings(t *testing.T) {
	db := newPostgresDB(t)
	seed := testutil.NewSeeder(t, db)
	job := seed.IndependentJob("Piano tuning", "70")
	client := seed.Client("Racer")
	svc := newRatingService(db)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := range attempts {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), ratingapp.CreateRatingRequest{
				ClientID: client.ID,
				JobID:    job.ID,
				Score:    score,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, rating.ErrAlreadyRated):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i%5 + 1)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	var count int64
	require.NoError(t, db.Table("ratings").Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentRatingsKeepAverageConsistent(t *testing.T) {
	db := newPostgresDB(t)
	seed := testutil.NewSeeder(t, db)
	job := seed.IndependentJob("Tax advice", "150")
	svc := newRatingService(db)

	scores := []int{5, 4, 3, 2, 1, 5, 4, 3, 2, 1, 5, 5}
	clients := make([]*partner.Client, len(scores))
	for i := range scores {
		clients[i] = seed.Client("Client")
	}

	var wg sync.WaitGroup
	for i, score := range scores {
		wg.Add(1)
		go func(i, score int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), ratingapp.CreateRatingRequest{
				ClientID: clients[i].ID,
				JobID:    job.ID,
				Score:    score,
			})
			assert.NoError(t, err)
		}(i, score)
	}
	wg.Wait()

	sum := 0
	for _, s := range scores {
		sum += s
	}
	want := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(scores)))).Round(4)

	stored, err := persistence.NewGormJobRepository(db).FindByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, want.Equal(stored.AverageRating), "want %s, got %s", want, stored.AverageRating)

	summary, err := svc.GetSummary(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(scores)), summary.Count)
}

func TestConcurrentFinalizationRecordsOneHistoryEntry(t *testing.T) {
	db := newPostgresDB(t)
	seed := testutil.NewSeeder(t, db)
	job := seed.IndependentJob("Roof repair", "320")
	client := seed.Client("Roofer client")
	history := persistence.NewGormHistoryRepository(db)
	svc := engagement.NewService(
		persistence.NewGormTransactionScope(db),
		persistence.NewGormJobInActionRepository(db),
		engagement.NewHistoryRecorder(zap.NewNop()),
		nil,
		zap.NewNop(),
	)
	ctx := context.Background()

	ja, err := svc.Create(ctx, engagement.CreateJobInActionRequest{JobID: job.ID, ClientID: &client.ID})
	require.NoError(t, err)
	_, err = svc.Transition(ctx, ja.ID, engagement.TransitionRequest{Status: "EN_PROGRESO"})
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*engagement.JobInActionResponse, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Transition(ctx, ja.ID, engagement.TransitionRequest{
				Status:  "FINALIZADO",
				Comment: "done",
			})
		}(i)
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i], "caller %d", i)
		assert.Equal(t, domainengagement.JobStatusFinished.String(), results[i].Status)
	}

	count, err := history.CountByJobInAction(ctx, ja.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
