// Package testapi assembles the complete HTTP stack on an in-memory SQLite
// database for handler and scenario tests.
package testapi

import (
	"net/http/httptest"
	"testing"
	"time"

	catalogapp "github.com/Wolf09/back-prof-sub000/internal/application/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/application/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/application/rating"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/cache"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/event"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/handler"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/middleware"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/router"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API is a running stack. Requests go through the same middleware chain
// as the server.
type API struct {
	t      *testing.T
	Engine *gin.Engine
	DB     *gorm.DB
	Seed   *testutil.Seeder
	Cache  *cache.InMemoryStore
	Bus    *event.InMemoryBus
}

// New builds the stack on a fresh database
func New(t *testing.T) *API {
	t.Helper()
	return NewOnDB(t, testutil.NewSQLiteDB(t))
}

// NewOnDB builds the stack on db, which must already carry the schema
func NewOnDB(t *testing.T, db *gorm.DB) *API {
	t.Helper()
	log := zap.NewNop()

	jobs := persistence.NewGormJobRepository(db)
	clients := persistence.NewGormClientRepository(db)
	professionals := persistence.NewGormProfessionalRepository(db)
	jobsInAction := persistence.NewGormJobInActionRepository(db)
	history := persistence.NewGormHistoryRepository(db)
	ratings := persistence.NewGormRatingRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	store := cache.NewInMemoryStore(time.Minute)
	bus := event.NewInMemoryBus(log)
	invalidation := cache.NewInvalidationHandler(store, log)
	bus.Subscribe(invalidation)

	jobService := catalogapp.NewJobService(jobs, professionals, clients, bus, log)
	queryService := catalogapp.NewQueryService(jobs, store, log)
	engagementService := engagement.NewService(scope, jobsInAction, engagement.NewHistoryRecorder(log), bus, log)
	historyService := engagement.NewHistoryService(history, log)
	ratingService := rating.NewService(scope, ratings, bus, log)

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName: "marketplace-test",
		CORS:        middleware.DefaultCORSConfig(),
	}, log)
	require.NoError(t, err)

	router.NewRouter(engine).Register(
		handler.NewHealthHandler(&persistence.Database{DB: db}, log),
		handler.NewJobHandler(jobService, queryService),
		handler.NewJobInActionHandler(engagementService),
		handler.NewHistoryHandler(historyService),
		handler.NewRatingHandler(ratingService),
	).Setup()

	return &API{
		t:      t,
		Engine: engine,
		DB:     db,
		Seed:   testutil.NewSeeder(t, db),
		Cache:  store,
		Bus:    bus,
	}
}

// Do sends a request under /api/v1. A non-nil body is JSON encoded.
func (a *API) Do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	return testutil.PerformRequest(a.t, a.Engine, method, "/api/v1"+path, body)
}
