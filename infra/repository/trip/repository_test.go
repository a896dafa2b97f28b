package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newTestTrip(t *testing.T) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip("Japan 2026", "USD", 5000,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return trip
}

func TestTripRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := tripRepository{db: db}
	trip := newTestTrip(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "trips" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), trip))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "trips" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	require.Error(t, repo.Create(context.Background(), trip))
}

func TestTripRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := tripRepository{db: db}
	id := uuid.New()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "name", "base_currency", "total_budget", "start_date", "end_date",
		"created_at", "updated_at",
	}).AddRow(id, "Japan 2026", "USD", 5000.0, start, nil, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM "trips" WHERE id = (.+)`).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "USD", got.BaseCurrency)
	require.Nil(t, got.EndDate)
}

func TestTripRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := tripRepository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "trips" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := tripRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "trips" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
