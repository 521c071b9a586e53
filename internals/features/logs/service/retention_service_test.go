package service

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestTrimLogs(t *testing.T) {
	t.Run("Under the cap, nothing deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "logs"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))

		TrimLogs(db, 100)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Surplus is deleted in one batch", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "logs"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(130))
		mock.ExpectExec(regexp.QuoteMeta(
			"DELETE FROM logs WHERE log_id IN (SELECT log_id FROM logs ORDER BY log_time ASC, log_id ASC LIMIT $1)")).
			WithArgs(int64(30)).
			WillReturnResult(sqlmock.NewResult(0, 30))

		TrimLogs(db, 100)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero cap disables retention", func(t *testing.T) {
		db, mock := newMockDB(t)
		TrimLogs(db, 0)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
