package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sqlite driver drops locking clauses, so the FOR UPDATE shape is checked
// against the postgres dialect.
func TestGormJobRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	repo := persistence.NewGormJobRepository(mdb.DB)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version", "kind", "professional_id",
		"client_id", "title", "description", "price", "average_rating", "active",
	}).AddRow(id.String(), now, now, 3, "independent", uuid.NewString(), nil, "Paint", "", "10.00", "4.2500", true)

	mdb.Mock.ExpectQuery(`SELECT \* FROM "jobs" WHERE id = \$1 ORDER BY "jobs"."id" LIMIT .+ FOR UPDATE`).
		WillReturnRows(rows)

	job, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, job.Version)
	assert.True(t, job.AverageRating.Equal(decimal.RequireFromString("4.25")))
	assert.Nil(t, job.ClientID)
	mdb.ExpectationsWereMet(t)
}

func TestGormJobRepository_Save_UpdatesAtPreviousVersion(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	repo := persistence.NewGormJobRepository(mdb.DB)

	job, err := catalog.NewJob(catalog.JobKindIndependent, uuid.New(), nil, "Paint", "", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, job.ApplyAverageRating(decimal.NewFromInt(3)))

	mdb.Mock.ExpectExec(`UPDATE "jobs" SET .+ WHERE \(?id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Save(context.Background(), job)
	assert.True(t, shared.IsConflict(err))
	mdb.ExpectationsWereMet(t)
}
