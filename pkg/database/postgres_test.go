package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "grades", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=grades sslmode=disable", dsn)
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE enrollments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), sqlx.NewDb(db, "sqlmock"), nil, func(tx *sqlx.Tx) error {
		_, execErr := tx.Exec("UPDATE enrollments SET student_number = 'X'")
		return execErr
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("allocation failed")
	err = WithTx(context.Background(), sqlx.NewDb(db, "sqlmock"), nil, func(tx *sqlx.Tx) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxNilHandle(t *testing.T) {
	err := WithTx(context.Background(), nil, nil, func(tx *sqlx.Tx) error { return nil })
	assert.Error(t, err)
}
