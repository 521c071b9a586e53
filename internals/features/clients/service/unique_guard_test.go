package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
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

func strPtr(s string) *string { return &s }

func TestCheckUniqueContacts(t *testing.T) {
	t.Run("Duplicate phone names the field", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "clients" WHERE client_phone = $1`)).
			WithArgs("13800001111").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := CheckUniqueContacts(db, 0, ContactSet{Phone: strPtr("13800001111")})
		require.Error(t, err)

		var taken *ErrContactTaken
		require.True(t, errors.As(err, &taken))
		assert.Equal(t, "phone", taken.Field)
	})

	t.Run("Update excludes the client itself", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "clients" WHERE client_weixin = $1 AND client_id <> $2`)).
			WithArgs("wx_abc", int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := CheckUniqueContacts(db, 7, ContactSet{Weixin: strPtr("wx_abc")})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty values are skipped", func(t *testing.T) {
		db, mock := newMockDB(t)

		err := CheckUniqueContacts(db, 0, ContactSet{Phone: strPtr(""), QQ: nil})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fields are checked in declaration order", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "clients" WHERE client_phone = $1`)).
			WithArgs("123").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT count(*) FROM "clients" WHERE client_qq = $1`)).
			WithArgs("99999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := CheckUniqueContacts(db, 0, ContactSet{Phone: strPtr("123"), QQ: strPtr("99999")})
		var taken *ErrContactTaken
		require.True(t, errors.As(err, &taken))
		assert.Equal(t, "QQ", taken.Field)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
