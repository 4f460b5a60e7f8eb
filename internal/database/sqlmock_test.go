package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCandidateRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reference_id FROM candidates`).
		WillReturnRows(sqlmock.NewRows([]string{"reference_id"}).AddRow("E00001").AddRow("bad"))
	mock.ExpectExec(`INSERT INTO candidates`).
		WithArgs("E00002", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	rec := newCandidate("Ravi Kumar")
	err = NewStore(db).CreateCandidate(context.Background(), rec)

	assert.Error(t, err)
	assert.Empty(t, rec.ReferenceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCandidateRollsBackOnListError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT reference_id FROM candidates`).WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err = NewStore(db).CreateCandidate(context.Background(), newCandidate("Ravi Kumar"))
	assert.ErrorContains(t, err, "list reference ids")
	assert.NoError(t, mock.ExpectationsWereMet())
}
